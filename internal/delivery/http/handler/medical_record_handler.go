package handler

import (
	"net/http"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type MedicalRecordHandler struct {
	medicalRecordUsecase usecase.MedicalRecordUsecase
	log                  *logrus.Logger
}

func NewMedicalRecordHandler(medicalRecordUsecase usecase.MedicalRecordUsecase, log *logrus.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		medicalRecordUsecase: medicalRecordUsecase,
		log:                  log,
	}
}

func (h *MedicalRecordHandler) GetMedicalFile(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := currentActor(w, r)
	if !ok {
		return
	}

	patientID, ok := uuidVar(r, "patient_id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	file, err := h.medicalRecordUsecase.GetMedicalFile(r.Context(), patientID, actorID, roleID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get medical file")
		return
	}

	response.Success(w, http.StatusOK, "Medical file retrieved successfully", file)
}

func (h *MedicalRecordHandler) InsertSummary(w http.ResponseWriter, r *http.Request) {
	doctorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	patientID, ok := uuidVar(r, "patient_id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.CreateSummaryRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	summary, err := h.medicalRecordUsecase.InsertSummary(r.Context(), patientID, doctorID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to save consultation summary")
		return
	}

	response.Created(w, "Consultation summary saved successfully", summary)
}
