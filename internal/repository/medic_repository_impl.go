package repository

import (
	"errors"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicRepository struct{}

func NewMedicRepository() domainRepo.MedicRepository {
	return &medicRepository{}
}

func (r *medicRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medic, error) {
	var medic entity.Medic
	err := db.Preload("User").Preload("Specialization").Where("medic_id = ?", id).First(&medic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medic, nil
}

func (r *medicRepository) LockForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Medic, error) {
	var medic entity.Medic
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("medic_id = ?", id).First(&medic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medic, nil
}

func (r *medicRepository) ListDoctors(db *gorm.DB, specializationID *int) ([]entity.DoctorListing, error) {
	var doctors []entity.DoctorListing
	if err := doctorListingQuery(db, specializationID).Scan(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// doctorListingQuery keeps doctors without a known specialization in the
// directory with an empty specialization name.
func doctorListingQuery(db *gorm.DB, specializationID *int) *gorm.DB {
	query := db.Table("medics AS m").
		Select("m.medic_id, u.username, m.specialization_id, COALESCE(s.specialization_name, '') AS specialization_name").
		Joins("JOIN users u ON u.user_id = m.medic_id").
		Joins("LEFT JOIN specializations s ON s.specialization_id = m.specialization_id")

	if specializationID != nil {
		query = query.Where("m.specialization_id = ?", *specializationID)
	}
	return query.Order("u.username ASC")
}

func (r *medicRepository) ListSpecializations(db *gorm.DB) ([]entity.Specialization, error) {
	var specializations []entity.Specialization
	err := db.Order("specialization_name ASC").Find(&specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}
