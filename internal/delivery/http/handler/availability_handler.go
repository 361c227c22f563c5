package handler

import (
	"net/http"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
		log:                 log,
	}
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateAvailabilityRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.availabilityUsecase.CreateBatch(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to publish availability")
		return
	}

	response.Created(w, "Availability published successfully", slots)
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	slots, err := h.availabilityUsecase.List(r.Context(), doctorID, query.Get("status"), query.Get("order"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}

// GetSlots lists the free slots of a doctor on one day as {id, label} options.
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	doctorID, err := uuid.Parse(query.Get("doctor_id"))
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	slots, err := h.availabilityUsecase.FreeSlots(r.Context(), doctorID, query.Get("appointment_date"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}
