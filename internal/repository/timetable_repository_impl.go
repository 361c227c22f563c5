package repository

import (
	"errors"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type timeTableRepository struct{}

func NewTimeTableRepository() domainRepo.TimeTableRepository {
	return &timeTableRepository{}
}

func (r *timeTableRepository) FindByMedicID(db *gorm.DB, medicID uuid.UUID) (*entity.TimeTable, error) {
	var timetable entity.TimeTable
	err := db.Where("medic_id = ?", medicID).First(&timetable).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &timetable, nil
}

func (r *timeTableRepository) Upsert(db *gorm.DB, timetable *entity.TimeTable) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "medic_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}),
	}).Create(timetable).Error
}
