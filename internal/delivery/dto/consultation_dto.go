package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookConsultationRequest struct {
	DoctorID         uuid.UUID `json:"doctor_id" validate:"required"`
	SpecializationID *int      `json:"specialization_id" validate:"omitempty,min=1"`
	AppointmentDate  string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	SlotID           int64     `json:"slot_id" validate:"required,min=1"`
	Notes            string    `json:"notes" validate:"max=2000"`
	ServiceID        *int      `json:"service_id" validate:"omitempty,min=1"`
}

type CancelConsultationRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"max=1000"`
}

type EditNotesRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64     `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Notes           string    `json:"notes"`
	ServiceID       int       `json:"service_id"`
	AvailabilityID  *int64    `json:"availability_id,omitempty"`
	Status          string    `json:"status"`
}

type ConsultationResponse struct {
	ID                 int64           `json:"id"`
	AppointmentDate    time.Time       `json:"appointment_date"`
	Notes              string          `json:"notes"`
	Status             string          `json:"status"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	PatientID          uuid.UUID       `json:"patient_id"`
	DoctorID           uuid.UUID       `json:"doctor_id"`
	CounterpartName    string          `json:"counterpart_name"`
	SpecializationName string          `json:"specialization_name"`
	ServiceName        string          `json:"service_name"`
	ServicePrice       decimal.Decimal `json:"service_price"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}
