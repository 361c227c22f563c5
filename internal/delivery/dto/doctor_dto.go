package dto

import "github.com/google/uuid"

// Request DTOs

type UpdateTimeTableRequest struct {
	Mon string `json:"mon" validate:"interval"`
	Tue string `json:"tue" validate:"interval"`
	Wed string `json:"wed" validate:"interval"`
	Thu string `json:"thu" validate:"interval"`
	Fri string `json:"fri" validate:"interval"`
	Sat string `json:"sat" validate:"interval"`
	Sun string `json:"sun" validate:"interval"`
}

// Response DTOs

type SpecializationResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DoctorResponse struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"username"`
	SpecializationID   int       `json:"specialization_id"`
	SpecializationName string    `json:"specialization_name"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DoctorOptionResponse struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

type TimeTableDayResponse struct {
	Day      string `json:"day"`
	Interval string `json:"interval"`
	Label    string `json:"label"`
}

type TimeTableResponse struct {
	DoctorID uuid.UUID              `json:"doctor_id"`
	Days     []TimeTableDayResponse `json:"days"`
}

type DoctorProfileResponse struct {
	ID             uuid.UUID              `json:"id"`
	Username       string                 `json:"username"`
	Specialization SpecializationResponse `json:"specialization"`
	TimeTable      *TimeTableResponse     `json:"timetable"`
}
