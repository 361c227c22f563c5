package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeTableRepository interface {
	FindByMedicID(db *gorm.DB, medicID uuid.UUID) (*entity.TimeTable, error)
	Upsert(db *gorm.DB, timetable *entity.TimeTable) error
}
