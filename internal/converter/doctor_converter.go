package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// UnavailableLabel is shown for days without working hours.
const UnavailableLabel = "Unavailable"

func DoctorListingToResponse(doctor entity.DoctorListing) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:                 doctor.MedicID,
		Username:           doctor.Username,
		SpecializationID:   doctor.SpecializationID,
		SpecializationName: doctor.SpecializationName,
	}
}

func DoctorListingsToResponses(doctors []entity.DoctorListing) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = DoctorListingToResponse(doctor)
	}
	return responses
}

func SpecializationsToResponses(specializations []entity.Specialization) []dto.SpecializationResponse {
	responses := make([]dto.SpecializationResponse, len(specializations))
	for i, s := range specializations {
		responses[i] = dto.SpecializationResponse{ID: s.ID, Name: s.Name}
	}
	return responses
}

// TimeTableToResponse converts a TimeTable entity to TimeTableResponse DTO.
// A nil timetable (never set) stays nil.
func TimeTableToResponse(timetable *entity.TimeTable) *dto.TimeTableResponse {
	if timetable == nil {
		return nil
	}

	days := timetable.Days()
	response := &dto.TimeTableResponse{
		DoctorID: timetable.MedicID,
		Days:     make([]dto.TimeTableDayResponse, len(days)),
	}
	for i, day := range days {
		label := day[1]
		if label == "" {
			label = UnavailableLabel
		}
		response.Days[i] = dto.TimeTableDayResponse{Day: day[0], Interval: day[1], Label: label}
	}
	return response
}

func MedicToProfileResponse(medic *entity.Medic, timetable *entity.TimeTable) *dto.DoctorProfileResponse {
	if medic == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		ID:       medic.MedicID,
		Username: medic.User.Username,
		Specialization: dto.SpecializationResponse{
			ID:   medic.Specialization.ID,
			Name: medic.Specialization.Name,
		},
		TimeTable: TimeTableToResponse(timetable),
	}
}
