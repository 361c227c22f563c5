package dto

import "github.com/google/uuid"

// Request DTOs

// CreateAvailabilityRequest publishes Count consecutive 30-minute slots.
// StartSlot and Count are checked by the slot rules so that clients get
// the domain messages rather than generic tag errors.
type CreateAvailabilityRequest struct {
	Date      string `json:"date" validate:"required"`
	StartSlot string `json:"start_slot"`
	Count     int    `json:"consecutive_consultations" validate:"gte=0,lte=48"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID        int64     `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
}

type AvailabilityListResponse struct {
	Slots []AvailabilityResponse `json:"slots"`
	Total int                    `json:"total"`
}

type SlotOptionResponse struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
