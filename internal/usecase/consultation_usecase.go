package usecase

import (
	"context"
	"strconv"
	"strings"
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

type ConsultationUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookConsultationRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID int64, actorID uuid.UUID, reason string) error
	Delete(ctx context.Context, appointmentID int64, actorID uuid.UUID) error
	EditNotes(ctx context.Context, appointmentID int64, actorID uuid.UUID, notes string) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID, status string, order string) (*dto.ConsultationListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, status string, order string) (*dto.ConsultationListResponse, error)
	ListMine(ctx context.Context, actorID uuid.UUID, roleID int, status string, order string) (*dto.ConsultationListResponse, error)
}

type consultationUsecase struct {
	tx               database.Transactor
	log              *logrus.Logger
	userRepo         repository.UserRepository
	medicRepo        repository.MedicRepository
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	serviceRepo      repository.ServiceRepository
	auditService     service.AuditService
	notifier         service.Notifier
	now              func() time.Time
	loc              *time.Location
	defaultServiceID int
}

func NewConsultationUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	medicRepo repository.MedicRepository,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
	notifier service.Notifier,
	now func() time.Time,
	loc *time.Location,
	defaultServiceID int,
) ConsultationUsecase {
	if now == nil {
		now = time.Now
	}
	return &consultationUsecase{
		tx:               tx,
		log:              log,
		userRepo:         userRepo,
		medicRepo:        medicRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		serviceRepo:      serviceRepo,
		auditService:     auditService,
		notifier:         notifier,
		now:              now,
		loc:              loc,
		defaultServiceID: defaultServiceID,
	}
}

// Book creates a consultation on a free slot.
//
// Flow:
// 1. Validate doctor, specialization, slot and date
// 2. Insert appointment and flip the slot FREE -> BOOKED in one transaction
// 3. After commit, notify the doctor (failures are logged only)
func (u *consultationUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookConsultationRequest) (*dto.AppointmentResponse, error) {
	conn := u.tx.Conn(ctx)

	doctor, err := u.medicRepo.FindByID(conn, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if req.SpecializationID != nil && *req.SpecializationID != doctor.SpecializationID {
		return nil, ErrSpecializationMismatch
	}

	date, err := validator.ParseDate(req.AppointmentDate, u.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}

	slot, err := u.availabilityRepo.FindByID(conn, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.MedicID != doctor.MedicID || slot.Date.Format(validator.DateLayout) != date.Format(validator.DateLayout) {
		return nil, ErrSlotMismatch
	}
	if !slot.IsFree() {
		return nil, ErrSlotUnavailable
	}

	// Only the date part is compared: a slot later today stays bookable even
	// when its start time has already passed.
	start := slot.StartTime.In(u.loc)
	appointmentDate := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, u.loc)
	now := u.now().In(u.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.loc)
	if appointmentDate.Before(today) {
		return nil, ErrDateInPast
	}

	serviceID := u.defaultServiceID
	if req.ServiceID != nil {
		serviceID = *req.ServiceID
	}
	svc, err := u.serviceRepo.FindByID(conn, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	patient, err := u.userRepo.FindByID(conn, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	slotID := slot.ID
	appointment := &entity.Appointment{
		PacientID:       patientID,
		MedicID:         doctor.MedicID,
		AppointmentDate: appointmentDate,
		Notes:           strings.TrimSpace(req.Notes),
		ServiceID:       svc.ID,
		AvailabilityID:  &slotID,
		Status:          entity.AppointmentScheduled,
	}

	err = u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		affected, err := u.availabilityRepo.MarkBooked(tx, slotID)
		if err != nil {
			u.log.Warnf("Failed to book slot %d: %+v", slotID, err)
			return err
		}
		if affected == 0 {
			return ErrSlotUnavailable
		}

		return u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionConsultationCreate, "appointment", strconv.FormatInt(appointment.ID, 10), appointment)
	})
	if err != nil {
		return nil, err
	}

	if err := u.notifier.NotifyBooking(ctx, service.BookingNotification{
		DoctorID:      doctor.MedicID,
		AppointmentID: appointment.ID,
		PatientName:   patient.Username,
		When:          appointmentDate,
	}); err != nil {
		u.log.Warnf("Failed to notify doctor %s about consultation %d (non-fatal): %+v", doctor.MedicID, appointment.ID, err)
	}

	u.log.Infof("Consultation booked: id=%d, patient=%s, doctor=%s, slot=%d", appointment.ID, patientID, doctor.MedicID, slotID)
	return converter.AppointmentToResponse(appointment, now), nil
}

// Cancel cancels a future consultation on behalf of either party and releases its slot.
func (u *consultationUsecase) Cancel(ctx context.Context, appointmentID int64, actorID uuid.UUID, reason string) error {
	conn := u.tx.Conn(ctx)

	appointment, err := u.appointmentRepo.FindByID(conn, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrConsultationNotFound
	}
	if !appointment.IsParty(actorID) {
		return ErrNotConsultationParty
	}
	if appointment.IsCancelled() {
		return ErrAlreadyCancelled
	}

	now := u.now()
	if appointment.AppointmentDate.Before(now) {
		return ErrCancelPast
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = entity.EmptyCancellationReason
	}

	err = u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.Cancel(tx, appointmentID, actorID, reason, now)
		if err != nil {
			u.log.Warnf("Failed to cancel consultation %d: %+v", appointmentID, err)
			return err
		}
		if affected == 0 {
			return ErrAlreadyCancelled
		}

		if appointment.AvailabilityID != nil {
			if _, err := u.availabilityRepo.MarkFree(tx, *appointment.AvailabilityID); err != nil {
				u.log.Warnf("Failed to release slot %d: %+v", *appointment.AvailabilityID, err)
				return err
			}
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionConsultationCancel, "appointment", strconv.FormatInt(appointmentID, 10),
			map[string]interface{}{"status": appointment.Status, "availability_id": appointment.AvailabilityID},
			map[string]interface{}{"status": entity.AppointmentCancelled, "cancellation_reason": reason},
		)
	})
	if err != nil {
		return err
	}

	u.notifyCancellation(ctx, appointment, actorID, reason)

	u.log.Infof("Consultation cancelled: id=%d, by=%s", appointmentID, actorID)
	return nil
}

func (u *consultationUsecase) notifyCancellation(ctx context.Context, appointment *entity.Appointment, actorID uuid.UUID, reason string) {
	name := ""
	actor, err := u.userRepo.FindByID(u.tx.Conn(ctx), actorID)
	if err != nil {
		u.log.Warnf("Failed to load canceler %s for notification: %+v", actorID, err)
	} else if actor != nil {
		name = actor.Username
	}

	recipient, label := appointment.MedicID, "Patient "+name
	if actorID == appointment.MedicID {
		recipient, label = appointment.PacientID, "Doctor "+name
	}

	if err := u.notifier.NotifyCancellation(ctx, service.CancellationNotification{
		RecipientID:   recipient,
		AppointmentID: appointment.ID,
		CancelerLabel: label,
		Reason:        reason,
		OriginalWhen:  appointment.AppointmentDate,
	}); err != nil {
		u.log.Warnf("Failed to notify %s about cancelled consultation %d (non-fatal): %+v", recipient, appointment.ID, err)
	}
}

// Delete removes a past or cancelled consultation. A past consultation keeps
// its slot BOOKED since the slot can no longer be booked anyway.
func (u *consultationUsecase) Delete(ctx context.Context, appointmentID int64, actorID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.tx.Conn(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrConsultationNotFound
	}
	if !appointment.IsParty(actorID) {
		return ErrNotConsultationParty
	}
	if appointment.StatusAt(u.now()) == entity.StatusActive {
		return ErrDeleteActive
	}

	err = u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.Delete(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to delete consultation %d: %+v", appointmentID, err)
			return err
		}
		if affected == 0 {
			return ErrConsultationNotFound
		}

		return u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionConsultationDelete, "appointment", strconv.FormatInt(appointmentID, 10), appointment)
	})
	if err != nil {
		return err
	}

	u.log.Infof("Consultation deleted: id=%d, by=%s", appointmentID, actorID)
	return nil
}

// EditNotes overwrites the notes of an Active consultation. Only the patient may edit.
func (u *consultationUsecase) EditNotes(ctx context.Context, appointmentID int64, actorID uuid.UUID, notes string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.tx.Conn(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrConsultationNotFound
	}
	if appointment.PacientID != actorID {
		return nil, ErrNotesNotOwner
	}

	now := u.now()
	if appointment.StatusAt(now) != entity.StatusActive {
		return nil, ErrNotesInactive
	}

	notes = strings.TrimSpace(notes)
	err = u.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.UpdateNotes(tx, appointmentID, notes)
		if err != nil {
			u.log.Warnf("Failed to update notes of consultation %d: %+v", appointmentID, err)
			return err
		}
		if affected == 0 {
			return ErrNotesInactive
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionConsultationNotesUpdate, "appointment", strconv.FormatInt(appointmentID, 10),
			map[string]interface{}{"notes": appointment.Notes},
			map[string]interface{}{"notes": notes},
		)
	})
	if err != nil {
		return nil, err
	}

	appointment.Notes = notes
	return converter.AppointmentToResponse(appointment, now), nil
}

func (u *consultationUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID, status string, order string) (*dto.ConsultationListResponse, error) {
	return u.list(ctx, entity.ConsultationFilter{PacientID: &patientID, Order: entity.ParseSortOrder(order)}, status)
}

func (u *consultationUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID, status string, order string) (*dto.ConsultationListResponse, error) {
	return u.list(ctx, entity.ConsultationFilter{MedicID: &doctorID, Order: entity.ParseSortOrder(order)}, status)
}

// ListMine lists the actor's consultations from the side their role implies.
func (u *consultationUsecase) ListMine(ctx context.Context, actorID uuid.UUID, roleID int, status string, order string) (*dto.ConsultationListResponse, error) {
	switch roleID {
	case entity.RoleIDPatient:
		return u.ListForPatient(ctx, actorID, status, order)
	case entity.RoleIDDoctor:
		return u.ListForDoctor(ctx, actorID, status, order)
	default:
		return nil, ErrRoleNotSupported
	}
}

func (u *consultationUsecase) list(ctx context.Context, filter entity.ConsultationFilter, status string) (*dto.ConsultationListResponse, error) {
	var want entity.ConsultationStatus
	if status != "" {
		s, ok := entity.ParseConsultationStatus(status)
		if !ok {
			return nil, ErrInvalidStatusFilter
		}
		want = s
	}

	views, err := u.appointmentRepo.ListViews(u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}

	now := u.now()
	consultations := make([]dto.ConsultationResponse, 0, len(views))
	for i := range views {
		derived := entity.DeriveStatus(views[i].AppointmentDate, views[i].Status, now)
		if want != "" && derived != want {
			continue
		}
		consultations = append(consultations, converter.ConsultationToResponse(&views[i], derived))
	}

	return &dto.ConsultationListResponse{
		Consultations: consultations,
		Total:         len(consultations),
	}, nil
}
