package entity

import (
	"strings"

	"github.com/google/uuid"
)

// SortOrder is the closed set of sort directions accepted from clients.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder maps "asc" (any case) to SortAsc and everything else to SortDesc.
func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), "asc") {
		return SortAsc
	}
	return SortDesc
}

func (o SortOrder) Desc() bool {
	return o != SortAsc
}

// AvailabilityFilter is a domain-level filter for listing a doctor's slots.
type AvailabilityFilter struct {
	MedicID uuid.UUID
	Status  *AvailabilityStatus
	Order   SortOrder
}

// ConsultationFilter selects consultations for one party.
// Exactly one of PacientID / MedicID is set.
type ConsultationFilter struct {
	PacientID *uuid.UUID
	MedicID   *uuid.UUID
	Order     SortOrder
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
