package repository

import (
	"errors"
	"time"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("appointment_id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// Cancel atomically cancels an appointment ONLY if it's not already cancelled.
// Returns affected rows: 1 = success, 0 = already cancelled (prevents double-cancel race).
func (r *appointmentRepository) Cancel(db *gorm.DB, id int64, cancelledBy uuid.UUID, reason string, at time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("appointment_id = ? AND status <> ?", id, entity.AppointmentCancelled).
		Updates(map[string]interface{}{
			"status":              entity.AppointmentCancelled,
			"cancellation_reason": reason,
			"cancelled_by":        cancelledBy,
			"cancelled_at":        at,
			"availability_id":     nil,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateNotes(db *gorm.DB, id int64, notes string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("appointment_id = ? AND status <> ?", id, entity.AppointmentCancelled).
		Update("notes", notes)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("appointment_id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

// ListViews joins each appointment with the counterpart's username, the
// doctor's specialization and the booked service.
func (r *appointmentRepository) ListViews(db *gorm.DB, filter entity.ConsultationFilter) ([]entity.ConsultationView, error) {
	var views []entity.ConsultationView
	query := db.Table("appointments AS a").
		Select(`a.appointment_id, a.appointment_date, a.notes, a.status, a.cancellation_reason,
			a.pacient_id, a.medic_id, u.username AS counterpart_name, COALESCE(s.specialization_name, '') AS specialization_name,
			sv.name AS service_name, sv.price AS service_price`).
		Joins("JOIN medics m ON m.medic_id = a.medic_id").
		Joins("LEFT JOIN specializations s ON s.specialization_id = m.specialization_id").
		Joins("JOIN services sv ON sv.service_id = a.service_id")

	switch {
	case filter.PacientID != nil:
		query = query.Joins("JOIN users u ON u.user_id = a.medic_id").
			Where("a.pacient_id = ?", *filter.PacientID)
	case filter.MedicID != nil:
		query = query.Joins("JOIN users u ON u.user_id = a.pacient_id").
			Where("a.medic_id = ?", *filter.MedicID)
	default:
		return nil, errors.New("consultation filter needs a patient or a doctor")
	}

	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Table: "a", Name: "appointment_date"}, Desc: filter.Order.Desc()}).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
