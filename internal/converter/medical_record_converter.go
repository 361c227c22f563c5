package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

func DiagnosisViewsToResponses(views []entity.DiagnosisView) []dto.DiagnosisResponse {
	responses := make([]dto.DiagnosisResponse, len(views))
	for i, v := range views {
		responses[i] = dto.DiagnosisResponse{
			ID:                 v.DiagnosisID,
			Symptoms:           v.Symptoms,
			Diagnosis:          v.Diagnosis,
			Treatment:          v.Treatment,
			DoctorName:         v.DoctorName,
			SpecializationName: v.SpecializationName,
			CreatedAt:          v.CreatedAt,
		}
	}
	return responses
}
