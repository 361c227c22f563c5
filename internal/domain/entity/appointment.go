package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentLifecycle is the stored lifecycle of an appointment. Only
// cancellation is persisted; Active/Attended are derived from the date.
type AppointmentLifecycle string

const (
	AppointmentScheduled AppointmentLifecycle = "SCHEDULED"
	AppointmentCancelled AppointmentLifecycle = "CANCELLED"
)

// ConsultationStatus is the display status computed at read time.
type ConsultationStatus string

const (
	StatusActive    ConsultationStatus = "Active"
	StatusCancelled ConsultationStatus = "Cancelled"
	StatusAttended  ConsultationStatus = "Attended"
)

// EmptyCancellationReason is stored when the canceler gives no reason.
const EmptyCancellationReason = "-"

// Appointment represents a booked consultation between a patient and a doctor
type Appointment struct {
	ID                 int64                `gorm:"column:appointment_id;primaryKey;autoIncrement" json:"id"`
	PacientID          uuid.UUID            `gorm:"type:uuid;not null;index" json:"pacient_id"`
	MedicID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"medic_id"`
	AppointmentDate    time.Time            `gorm:"not null;index" json:"appointment_date"`
	Notes              string               `gorm:"type:text;not null;default:''" json:"notes"`
	ServiceID          int                  `gorm:"not null" json:"service_id"`
	AvailabilityID     *int64               `gorm:"index" json:"availability_id,omitempty"`
	Status             AppointmentLifecycle `gorm:"type:varchar(10);not null;default:'SCHEDULED'" json:"status"`
	CancellationReason string               `gorm:"type:text;not null;default:''" json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID           `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// IsParty reports whether userID is the patient or the doctor of the appointment.
func (a *Appointment) IsParty(userID uuid.UUID) bool {
	return a.PacientID == userID || a.MedicID == userID
}

// StatusAt derives the display status at the given instant.
func (a *Appointment) StatusAt(now time.Time) ConsultationStatus {
	return DeriveStatus(a.AppointmentDate, a.Status, now)
}

// DeriveStatus is the single source of truth for the display status. It is a
// pure function of the appointment time, the stored lifecycle and now.
func DeriveStatus(appointmentDate time.Time, lifecycle AppointmentLifecycle, now time.Time) ConsultationStatus {
	if lifecycle == AppointmentCancelled {
		return StatusCancelled
	}
	if !appointmentDate.Before(now) {
		return StatusActive
	}
	return StatusAttended
}

// ParseConsultationStatus accepts the display status names case-insensitively.
func ParseConsultationStatus(raw string) (ConsultationStatus, bool) {
	switch upper(raw) {
	case "ACTIVE":
		return StatusActive, true
	case "CANCELLED":
		return StatusCancelled, true
	case "ATTENDED":
		return StatusAttended, true
	}
	return "", false
}

// ConsultationView is the joined read model behind the consultation lists.
// CounterpartName is the doctor's username for patients and the patient's
// username for doctors.
type ConsultationView struct {
	AppointmentID      int64
	AppointmentDate    time.Time
	Notes              string
	Status             AppointmentLifecycle
	CancellationReason string
	PacientID          uuid.UUID
	MedicID            uuid.UUID
	CounterpartName    string
	SpecializationName string
	ServiceName        string
	ServicePrice       decimal.Decimal
}
