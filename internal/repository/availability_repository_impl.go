package repository

import (
	"errors"
	"time"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) CreateBatch(db *gorm.DB, slots []entity.Availability) error {
	if len(slots) == 0 {
		return nil
	}
	return db.Create(&slots).Error
}

func (r *availabilityRepository) FindByID(db *gorm.DB, id int64) (*entity.Availability, error) {
	var slot entity.Availability
	err := db.Where("availability_id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilityRepository) FindStartingBetween(db *gorm.DB, medicID uuid.UUID, from, to time.Time) ([]entity.Availability, error) {
	var slots []entity.Availability
	err := db.Where("medic_id = ? AND start_time > ? AND start_time < ?", medicID, from, to).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilityRepository) List(db *gorm.DB, filter entity.AvailabilityFilter) ([]entity.Availability, error) {
	var slots []entity.Availability
	query := db.Where("medic_id = ?", filter.MedicID)

	if filter.Status != nil {
		query = query.Where("availability_status = ?", *filter.Status)
	}

	desc := filter.Order.Desc()
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "start_time"}, Desc: desc}).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilityRepository) FindFreeOn(db *gorm.DB, medicID uuid.UUID, date time.Time) ([]entity.Availability, error) {
	var slots []entity.Availability
	err := db.Where("medic_id = ? AND date = ? AND availability_status = ?", medicID, date.Format("2006-01-02"), entity.AvailabilityFree).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// MarkBooked atomically books the slot ONLY if it is still free.
// Returns affected rows: 1 = booked, 0 = taken by a concurrent request.
func (r *availabilityRepository) MarkBooked(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Availability{}).
		Where("availability_id = ? AND availability_status = ?", id, entity.AvailabilityFree).
		Update("availability_status", entity.AvailabilityBooked)
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) MarkFree(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Availability{}).
		Where("availability_id = ?", id).
		Update("availability_status", entity.AvailabilityFree)
	return result.RowsAffected, result.Error
}
