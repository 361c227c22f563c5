package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medic, error)
	// LockForUpdate takes a row lock on the doctor so that concurrent
	// availability batches for the same doctor serialize.
	LockForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Medic, error)
	ListDoctors(db *gorm.DB, specializationID *int) ([]entity.DoctorListing, error)
	ListSpecializations(db *gorm.DB) ([]entity.Specialization, error)
}
