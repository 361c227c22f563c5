package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is the single record per patient. Records are provisioned by
// patient onboarding; this service only reads them.
type MedicalRecord struct {
	ID        int64     `gorm:"column:record_id;primaryKey;autoIncrement" json:"id"`
	PacientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"pacient_id"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// Diagnosis is an append-only consultation summary filed by a doctor.
type Diagnosis struct {
	ID        int64     `gorm:"column:diagnosis_id;primaryKey;autoIncrement" json:"id"`
	RecordID  int64     `gorm:"not null;index" json:"record_id"`
	MedicID   uuid.UUID `gorm:"type:uuid;not null" json:"medic_id"`
	Symptoms  string    `gorm:"type:text;not null" json:"symptoms"`
	Diagnosis string    `gorm:"type:text;not null" json:"diagnosis"`
	Treatment string    `gorm:"type:text;not null" json:"treatment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}

// DiagnosisView is a diagnosis joined with its authoring doctor.
type DiagnosisView struct {
	DiagnosisID        int64
	Symptoms           string
	Diagnosis          string
	Treatment          string
	DoctorName         string
	SpecializationName string
	CreatedAt          time.Time
}
