package converter

import (
	"time"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity, with its status
// derived at now, to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment, now time.Time) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PacientID,
		DoctorID:        appointment.MedicID,
		AppointmentDate: appointment.AppointmentDate,
		Notes:           appointment.Notes,
		ServiceID:       appointment.ServiceID,
		AvailabilityID:  appointment.AvailabilityID,
		Status:          string(appointment.StatusAt(now)),
	}
}

// ConsultationToResponse converts a ConsultationView to ConsultationResponse DTO
func ConsultationToResponse(view *entity.ConsultationView, status entity.ConsultationStatus) dto.ConsultationResponse {
	return dto.ConsultationResponse{
		ID:                 view.AppointmentID,
		AppointmentDate:    view.AppointmentDate,
		Notes:              view.Notes,
		Status:             string(status),
		CancellationReason: view.CancellationReason,
		PatientID:          view.PacientID,
		DoctorID:           view.MedicID,
		CounterpartName:    view.CounterpartName,
		SpecializationName: view.SpecializationName,
		ServiceName:        view.ServiceName,
		ServicePrice:       view.ServicePrice,
	}
}
