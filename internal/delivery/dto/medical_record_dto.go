package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateSummaryRequest fields are checked after trimming, so they carry no tags.
type CreateSummaryRequest struct {
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
}

// Response DTOs

type DiagnosisResponse struct {
	ID                 int64     `json:"id"`
	Symptoms           string    `json:"symptoms"`
	Diagnosis          string    `json:"diagnosis"`
	Treatment          string    `json:"treatment"`
	DoctorName         string    `json:"doctor_name"`
	SpecializationName string    `json:"specialization_name"`
	CreatedAt          time.Time `json:"created_at"`
}

type MedicalFileResponse struct {
	Patient   UserResponse        `json:"patient"`
	RecordID  int64               `json:"record_id"`
	Diagnoses []DiagnosisResponse `json:"diagnoses"`
}

type SummaryCreatedResponse struct {
	ID        int64     `json:"id"`
	RecordID  int64     `json:"record_id"`
	PatientID uuid.UUID `json:"patient_id"`
}
