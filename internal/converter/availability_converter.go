package converter

import (
	"time"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// AvailabilityToResponse converts an Availability entity to AvailabilityResponse DTO,
// rendering times in the clinic's location.
func AvailabilityToResponse(slot *entity.Availability, loc *time.Location) dto.AvailabilityResponse {
	return dto.AvailabilityResponse{
		ID:        slot.ID,
		DoctorID:  slot.MedicID,
		Date:      slot.Date.Format(dateLayout),
		StartTime: slot.StartTime.In(loc).Format(timeLayout),
		EndTime:   slot.EndTime.In(loc).Format(timeLayout),
		Status:    string(slot.Status),
	}
}

func AvailabilitiesToResponses(slots []entity.Availability, loc *time.Location) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(slots))
	for i := range slots {
		responses[i] = AvailabilityToResponse(&slots[i], loc)
	}
	return responses
}

// SlotsToOptions converts slots to the {id, label} pairs used by the booking form.
func SlotsToOptions(slots []entity.Availability, loc *time.Location) []dto.SlotOptionResponse {
	options := make([]dto.SlotOptionResponse, len(slots))
	for i, slot := range slots {
		start := slot.StartTime.In(loc).Format(timeLayout)
		end := slot.EndTime.In(loc).Format(timeLayout)
		options[i] = dto.SlotOptionResponse{
			ID:        slot.ID,
			Label:     start + " - " + end,
			StartTime: start,
			EndTime:   end,
		}
	}
	return options
}
