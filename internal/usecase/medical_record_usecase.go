package usecase

import (
	"context"
	"strconv"
	"strings"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/infrastructure/database"
	"clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MedicalRecordUsecase interface {
	GetMedicalFile(ctx context.Context, patientID uuid.UUID, actorID uuid.UUID, actorRoleID int) (*dto.MedicalFileResponse, error)
	InsertSummary(ctx context.Context, patientID uuid.UUID, doctorID uuid.UUID, req *dto.CreateSummaryRequest) (*dto.SummaryCreatedResponse, error)
}

type medicalRecordUsecase struct {
	tx                database.Transactor
	log               *logrus.Logger
	userRepo          repository.UserRepository
	medicalRecordRepo repository.MedicalRecordRepository
	auditService      service.AuditService
}

func NewMedicalRecordUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		tx:                tx,
		log:               log,
		userRepo:          userRepo,
		medicalRecordRepo: medicalRecordRepo,
		auditService:      auditService,
	}
}

// GetMedicalFile returns the patient's record with every diagnosis. Patients
// see only their own file; doctors and admins see any.
func (u *medicalRecordUsecase) GetMedicalFile(ctx context.Context, patientID uuid.UUID, actorID uuid.UUID, actorRoleID int) (*dto.MedicalFileResponse, error) {
	if actorID != patientID && actorRoleID != entity.RoleIDDoctor && actorRoleID != entity.RoleIDAdmin {
		return nil, ErrMedicalFileForbidden
	}

	conn := u.tx.Conn(ctx)

	patient, err := u.userRepo.FindByID(conn, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record, err := u.medicalRecordRepo.FindByPacientID(conn, patientID)
	if err != nil {
		u.log.Warnf("Failed to find medical record of %s: %+v", patientID, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	diagnoses, err := u.medicalRecordRepo.ListDiagnosisViews(conn, record.ID)
	if err != nil {
		u.log.Warnf("Failed to list diagnoses of record %d: %+v", record.ID, err)
		return nil, err
	}

	return &dto.MedicalFileResponse{
		Patient:   *converter.UserToResponse(patient),
		RecordID:  record.ID,
		Diagnoses: converter.DiagnosisViewsToResponses(diagnoses),
	}, nil
}

// InsertSummary appends a diagnosis to the patient's existing record.
func (u *medicalRecordUsecase) InsertSummary(ctx context.Context, patientID uuid.UUID, doctorID uuid.UUID, req *dto.CreateSummaryRequest) (*dto.SummaryCreatedResponse, error) {
	diagnosis := &entity.Diagnosis{
		MedicID:   doctorID,
		Symptoms:  strings.TrimSpace(req.Symptoms),
		Diagnosis: strings.TrimSpace(req.Diagnosis),
		Treatment: strings.TrimSpace(req.Treatment),
	}
	if diagnosis.Symptoms == "" || diagnosis.Diagnosis == "" || diagnosis.Treatment == "" {
		return nil, ErrSummaryFieldsRequired
	}

	err := u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		record, err := u.medicalRecordRepo.FindByPacientID(tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find medical record of %s: %+v", patientID, err)
			return err
		}
		if record == nil {
			return ErrMedicalRecordNotFound
		}

		diagnosis.RecordID = record.ID
		if err := u.medicalRecordRepo.CreateDiagnosis(tx, diagnosis); err != nil {
			u.log.Warnf("Failed to create diagnosis for %s: %+v", patientID, err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionDiagnosisCreate, "diagnosis", strconv.FormatInt(diagnosis.ID, 10), diagnosis)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Consultation summary added: diagnosis=%d, patient=%s, doctor=%s", diagnosis.ID, patientID, doctorID)
	return &dto.SummaryCreatedResponse{
		ID:        diagnosis.ID,
		RecordID:  diagnosis.RecordID,
		PatientID: patientID,
	}, nil
}
