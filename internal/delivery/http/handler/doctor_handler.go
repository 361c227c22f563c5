package handler

import (
	"net/http"
	"strconv"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DoctorHandler struct {
	directoryUsecase usecase.DoctorDirectoryUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
}

func NewDoctorHandler(directoryUsecase usecase.DoctorDirectoryUsecase, validator *validator.CustomValidator, log *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
		log:              log,
	}
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.ListDoctors(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	specializations, err := h.directoryUsecase.ListSpecializations(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get specializations")
		return
	}

	response.Success(w, http.StatusOK, "Specializations retrieved successfully", specializations)
}

func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	profile, err := h.directoryUsecase.GetProfile(r.Context(), doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctor profile")
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", profile)
}

// AvailableDoctors backs the booking form's doctor picker.
func (h *DoctorHandler) AvailableDoctors(w http.ResponseWriter, r *http.Request) {
	requesterID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	var specializationID *int
	if raw := r.URL.Query().Get("specialization_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid specialization ID")
			return
		}
		specializationID = &id
	}

	doctors, err := h.directoryUsecase.AvailableDoctors(r.Context(), specializationID, requesterID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	doctorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	timetable, err := h.directoryUsecase.GetTimetable(r.Context(), doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get timetable")
		return
	}

	response.Success(w, http.StatusOK, "Timetable retrieved successfully", timetable)
}

func (h *DoctorHandler) UpdateTimetable(w http.ResponseWriter, r *http.Request) {
	doctorID, _, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTimeTableRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	timetable, err := h.directoryUsecase.UpsertTimetable(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update timetable")
		return
	}

	response.Success(w, http.StatusOK, "Timetable updated successfully", timetable)
}
