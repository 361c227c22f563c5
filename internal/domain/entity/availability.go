package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityStatus is the booking state of a published slot.
type AvailabilityStatus string

const (
	AvailabilityFree   AvailabilityStatus = "FREE"
	AvailabilityBooked AvailabilityStatus = "BOOKED"
)

// SlotDuration is the fixed length of every availability slot.
const SlotDuration = 30 * time.Minute

// Availability is a single 30-minute slot a doctor publishes as bookable.
// (medic_id, start_time) is unique.
type Availability struct {
	ID        int64              `gorm:"column:availability_id;primaryKey;autoIncrement" json:"id"`
	MedicID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:ux_availabilities_medic_start,priority:1" json:"medic_id"`
	Date      time.Time          `gorm:"type:date;not null;index" json:"date"`
	StartTime time.Time          `gorm:"not null;uniqueIndex:ux_availabilities_medic_start,priority:2" json:"start_time"`
	EndTime   time.Time          `gorm:"not null" json:"end_time"`
	Status    AvailabilityStatus `gorm:"column:availability_status;type:varchar(10);not null;default:'FREE';index" json:"availability_status"`
}

func (Availability) TableName() string {
	return "availabilities"
}

func (a *Availability) IsFree() bool {
	return a.Status == AvailabilityFree
}

// Overlaps reports whether a slot starting at start would begin less than one
// slot length away from this one.
func (a *Availability) Overlaps(start time.Time) bool {
	diff := a.StartTime.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return diff < SlotDuration
}

// ParseAvailabilityStatus accepts FREE/BOOKED case-insensitively; ok is false otherwise.
func ParseAvailabilityStatus(raw string) (AvailabilityStatus, bool) {
	switch AvailabilityStatus(upper(raw)) {
	case AvailabilityFree:
		return AvailabilityFree, true
	case AvailabilityBooked:
		return AvailabilityBooked, true
	}
	return "", false
}
