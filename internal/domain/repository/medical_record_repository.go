package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	FindByPacientID(db *gorm.DB, pacientID uuid.UUID) (*entity.MedicalRecord, error)
	CreateDiagnosis(db *gorm.DB, diagnosis *entity.Diagnosis) error
	ListDiagnosisViews(db *gorm.DB, recordID int64) ([]entity.DiagnosisView, error)
}
