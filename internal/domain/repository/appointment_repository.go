package repository

import (
	"time"

	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	// Cancel marks the appointment cancelled and drops its slot reference,
	// only if it is not cancelled already. Returns affected rows.
	Cancel(db *gorm.DB, id int64, cancelledBy uuid.UUID, reason string, at time.Time) (int64, error)
	UpdateNotes(db *gorm.DB, id int64, notes string) (int64, error)
	Delete(db *gorm.DB, id int64) (int64, error)
	ListViews(db *gorm.DB, filter entity.ConsultationFilter) ([]entity.ConsultationView, error)
}
