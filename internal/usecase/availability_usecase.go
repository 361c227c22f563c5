package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

type AvailabilityUsecase interface {
	CreateBatch(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityListResponse, error)
	List(ctx context.Context, doctorID uuid.UUID, status string, order string) (*dto.AvailabilityListResponse, error)
	FreeSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]dto.SlotOptionResponse, error)
}

type availabilityUsecase struct {
	tx               database.Transactor
	log              *logrus.Logger
	medicRepo        repository.MedicRepository
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
	now              func() time.Time
	loc              *time.Location
}

func NewAvailabilityUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	medicRepo repository.MedicRepository,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
	now func() time.Time,
	loc *time.Location,
) AvailabilityUsecase {
	if now == nil {
		now = time.Now
	}
	return &availabilityUsecase{
		tx:               tx,
		log:              log,
		medicRepo:        medicRepo,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
		now:              now,
		loc:              loc,
	}
}

// CreateBatch publishes consecutive 30-minute slots for a doctor.
//
// The whole batch is written in one transaction holding a row lock on the
// doctor, so two batches for the same doctor cannot interleave between the
// overlap check and the insert. Either every slot is created or none is.
func (u *availabilityUsecase) CreateBatch(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityListResponse, error) {
	if err := validator.ValidateSlots(req.Date, req.StartSlot, req.Count, u.now().In(u.loc), u.loc); err != nil {
		return nil, asValidation(err)
	}

	generated, err := validator.GenerateSlots(req.Date, req.StartSlot, req.Count, u.loc)
	if err != nil {
		return nil, asValidation(err)
	}

	first := generated[0].Start
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)

	slots := make([]entity.Availability, len(generated))
	for i, g := range generated {
		slots[i] = entity.Availability{
			MedicID:   doctorID,
			Date:      day,
			StartTime: g.Start,
			EndTime:   g.End,
			Status:    entity.AvailabilityFree,
		}
	}

	err = u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		medic, err := u.medicRepo.LockForUpdate(tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to lock doctor %s: %+v", doctorID, err)
			return err
		}
		if medic == nil {
			return ErrDoctorNotFound
		}

		last := generated[len(generated)-1].Start
		existing, err := u.availabilityRepo.FindStartingBetween(tx, doctorID, first.Add(-entity.SlotDuration), last.Add(entity.SlotDuration))
		if err != nil {
			u.log.Warnf("Failed to load existing slots for doctor %s: %+v", doctorID, err)
			return err
		}
		for _, candidate := range generated {
			for i := range existing {
				if existing[i].Overlaps(candidate.Start) {
					return u.overlapError(candidate, &existing[i])
				}
			}
		}

		if err := u.availabilityRepo.CreateBatch(tx, slots); err != nil {
			if isDuplicateKeyError(err, "medic_start") {
				return ErrSlotOverlap
			}
			u.log.Warnf("Failed to create availability slots: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionAvailabilityCreate, "availability", strconv.FormatInt(slots[0].ID, 10), map[string]interface{}{
			"date":       req.Date,
			"start_slot": req.StartSlot,
			"count":      req.Count,
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Availability created: doctor=%s, date=%s, start=%s, count=%d", doctorID, req.Date, req.StartSlot, req.Count)
	return &dto.AvailabilityListResponse{
		Slots: converter.AvailabilitiesToResponses(slots, u.loc),
		Total: len(slots),
	}, nil
}

func (u *availabilityUsecase) overlapError(candidate validator.TimeSlot, existing *entity.Availability) error {
	return validationError(fmt.Sprintf(
		"slot %s - %s overlaps with an existing slot (%s - %s)",
		candidate.Start.In(u.loc).Format(validator.TimeLayout),
		candidate.End.In(u.loc).Format(validator.TimeLayout),
		existing.StartTime.In(u.loc).Format(validator.TimeLayout),
		existing.EndTime.In(u.loc).Format(validator.TimeLayout),
	))
}

func (u *availabilityUsecase) List(ctx context.Context, doctorID uuid.UUID, status string, order string) (*dto.AvailabilityListResponse, error) {
	filter := entity.AvailabilityFilter{
		MedicID: doctorID,
		Order:   entity.ParseSortOrder(order),
	}
	if status != "" {
		s, ok := entity.ParseAvailabilityStatus(status)
		if !ok {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = &s
	}

	slots, err := u.availabilityRepo.List(u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Slots: converter.AvailabilitiesToResponses(slots, u.loc),
		Total: len(slots),
	}, nil
}

// FreeSlots returns the doctor's FREE slots on date as booking-form options.
func (u *availabilityUsecase) FreeSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]dto.SlotOptionResponse, error) {
	day, err := time.Parse(validator.DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	slots, err := u.availabilityRepo.FindFreeOn(u.tx.Conn(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find free slots for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return converter.SlotsToOptions(slots, u.loc), nil
}
