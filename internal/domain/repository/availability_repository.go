package repository

import (
	"time"

	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	CreateBatch(db *gorm.DB, slots []entity.Availability) error
	FindByID(db *gorm.DB, id int64) (*entity.Availability, error)
	// FindStartingBetween returns the doctor's slots with from < start_time < to.
	FindStartingBetween(db *gorm.DB, medicID uuid.UUID, from, to time.Time) ([]entity.Availability, error)
	List(db *gorm.DB, filter entity.AvailabilityFilter) ([]entity.Availability, error)
	FindFreeOn(db *gorm.DB, medicID uuid.UUID, date time.Time) ([]entity.Availability, error)
	// MarkBooked flips FREE to BOOKED. Zero affected rows means the slot was taken.
	MarkBooked(db *gorm.DB, id int64) (int64, error)
	MarkFree(db *gorm.DB, id int64) (int64, error)
}
