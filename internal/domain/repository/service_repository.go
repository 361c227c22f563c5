package repository

import (
	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Service, error)
}
