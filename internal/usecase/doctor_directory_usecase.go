package usecase

import (
	"context"
	"fmt"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/infrastructure/database"
	"clinic-booking/internal/service"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorDirectoryUsecase interface {
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ListSpecializations(ctx context.Context) ([]dto.SpecializationResponse, error)
	GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorProfileResponse, error)
	GetTimetable(ctx context.Context, doctorID uuid.UUID) (*dto.TimeTableResponse, error)
	UpsertTimetable(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateTimeTableRequest) (*dto.TimeTableResponse, error)
	AvailableDoctors(ctx context.Context, specializationID *int, requesterID uuid.UUID) ([]dto.DoctorOptionResponse, error)
}

type doctorDirectoryUsecase struct {
	tx            database.Transactor
	log           *logrus.Logger
	medicRepo     repository.MedicRepository
	timeTableRepo repository.TimeTableRepository
	auditService  service.AuditService
}

func NewDoctorDirectoryUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	medicRepo repository.MedicRepository,
	timeTableRepo repository.TimeTableRepository,
	auditService service.AuditService,
) DoctorDirectoryUsecase {
	return &doctorDirectoryUsecase{
		tx:            tx,
		log:           log,
		medicRepo:     medicRepo,
		timeTableRepo: timeTableRepo,
		auditService:  auditService,
	}
}

func (u *doctorDirectoryUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.medicRepo.ListDoctors(u.tx.Conn(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorListingsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorDirectoryUsecase) ListSpecializations(ctx context.Context) ([]dto.SpecializationResponse, error) {
	specializations, err := u.medicRepo.ListSpecializations(u.tx.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to list specializations: %+v", err)
		return nil, err
	}
	return converter.SpecializationsToResponses(specializations), nil
}

// GetProfile returns the doctor with their timetable, or a nil timetable if
// they never set one.
func (u *doctorDirectoryUsecase) GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorProfileResponse, error) {
	conn := u.tx.Conn(ctx)

	medic, err := u.medicRepo.FindByID(conn, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if medic == nil {
		return nil, ErrDoctorNotFound
	}

	timetable, err := u.timeTableRepo.FindByMedicID(conn, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find timetable for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.MedicToProfileResponse(medic, timetable), nil
}

// GetTimetable returns the doctor's own week; an unset week reads as all Unavailable.
func (u *doctorDirectoryUsecase) GetTimetable(ctx context.Context, doctorID uuid.UUID) (*dto.TimeTableResponse, error) {
	timetable, err := u.timeTableRepo.FindByMedicID(u.tx.Conn(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find timetable for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if timetable == nil {
		timetable = &entity.TimeTable{MedicID: doctorID}
	}
	return converter.TimeTableToResponse(timetable), nil
}

// UpsertTimetable replaces the doctor's week. One malformed day rejects the whole week.
func (u *doctorDirectoryUsecase) UpsertTimetable(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateTimeTableRequest) (*dto.TimeTableResponse, error) {
	timetable := &entity.TimeTable{
		MedicID: doctorID,
		Mon:     req.Mon,
		Tue:     req.Tue,
		Wed:     req.Wed,
		Thu:     req.Thu,
		Fri:     req.Fri,
		Sat:     req.Sat,
		Sun:     req.Sun,
	}
	for _, day := range timetable.Days() {
		if err := validator.ValidateInterval(day[1]); err != nil {
			return nil, validationError(fmt.Sprintf("%s: %s", day[0], err))
		}
	}

	err := u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		medic, err := u.medicRepo.FindByID(tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
			return err
		}
		if medic == nil {
			return ErrDoctorNotFound
		}

		previous, err := u.timeTableRepo.FindByMedicID(tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find timetable for doctor %s: %+v", doctorID, err)
			return err
		}

		if err := u.timeTableRepo.Upsert(tx, timetable); err != nil {
			u.log.Warnf("Failed to upsert timetable for doctor %s: %+v", doctorID, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionTimetableUpdate, "timetable", doctorID.String(), previous, timetable)
	})
	if err != nil {
		return nil, err
	}

	return converter.TimeTableToResponse(timetable), nil
}

// AvailableDoctors lists doctors as {id, label} options for the booking form,
// without the requester. A nil specializationID lists every doctor.
func (u *doctorDirectoryUsecase) AvailableDoctors(ctx context.Context, specializationID *int, requesterID uuid.UUID) ([]dto.DoctorOptionResponse, error) {
	doctors, err := u.medicRepo.ListDoctors(u.tx.Conn(ctx), specializationID)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	options := make([]dto.DoctorOptionResponse, 0, len(doctors))
	for _, d := range doctors {
		if d.MedicID == requesterID {
			continue
		}
		options = append(options, dto.DoctorOptionResponse{ID: d.MedicID, Label: d.Username})
	}
	return options, nil
}
