package repository

import (
	"errors"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) FindByPacientID(db *gorm.DB, pacientID uuid.UUID) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.Where("pacient_id = ?", pacientID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) CreateDiagnosis(db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.Create(diagnosis).Error
}

func (r *medicalRecordRepository) ListDiagnosisViews(db *gorm.DB, recordID int64) ([]entity.DiagnosisView, error) {
	var views []entity.DiagnosisView
	err := db.Table("diagnoses AS d").
		Select("d.diagnosis_id, d.symptoms, d.diagnosis, d.treatment, u.username AS doctor_name, COALESCE(s.specialization_name, '') AS specialization_name, d.created_at").
		Joins("JOIN users u ON u.user_id = d.medic_id").
		Joins("JOIN medics m ON m.medic_id = d.medic_id").
		Joins("LEFT JOIN specializations s ON s.specialization_id = m.specialization_id").
		Where("d.record_id = ?", recordID).
		Order("d.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
