package handler

import (
	"net/http"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
		log:                 log,
	}
}

func (h *ConsultationHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.BookConsultationRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.consultationUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to book consultation")
		return
	}

	response.Created(w, "Consultation booked successfully", appointment)
}

func (h *ConsultationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	consultations, err := h.consultationUsecase.ListMine(r.Context(), actorID, roleID, query.Get("status"), query.Get("order"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	appointmentID, ok := int64Var(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid consultation ID")
		return
	}

	var req dto.CancelConsultationRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.consultationUsecase.Cancel(r.Context(), appointmentID, actorID, req.CancellationReason); err != nil {
		writeError(w, h.log, err, "Failed to cancel consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation cancelled successfully", nil)
}

func (h *ConsultationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	appointmentID, ok := int64Var(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid consultation ID")
		return
	}

	if err := h.consultationUsecase.Delete(r.Context(), appointmentID, actorID); err != nil {
		writeError(w, h.log, err, "Failed to delete consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation deleted successfully", nil)
}

func (h *ConsultationHandler) EditNotes(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	appointmentID, ok := int64Var(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid consultation ID")
		return
	}

	var req dto.EditNotesRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.consultationUsecase.EditNotes(r.Context(), appointmentID, actorID, req.Notes)
	if err != nil {
		writeError(w, h.log, err, "Failed to update notes")
		return
	}

	response.Success(w, http.StatusOK, "Notes updated successfully", appointment)
}
