package http

import (
	"net/http"

	"clinic-booking/internal/delivery/http/handler"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router               *mux.Router
	log                  *logrus.Logger
	consultationHandler  *handler.ConsultationHandler
	availabilityHandler  *handler.AvailabilityHandler
	doctorHandler        *handler.DoctorHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	consultationHandler *handler.ConsultationHandler,
	availabilityHandler *handler.AvailabilityHandler,
	doctorHandler *handler.DoctorHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		log:                  log,
		consultationHandler:  consultationHandler,
		availabilityHandler:  availabilityHandler,
		doctorHandler:        doctorHandler,
		medicalRecordHandler: medicalRecordHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

// Setup registers the routes and returns the router wrapped in the CORS and
// access-log middleware, so preflights and unmatched paths pass through both.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Any authenticated user
	authed := api.NewRoute().Subrouter()
	authed.Use(r.authMiddleware.Authenticate)
	authed.HandleFunc("/doctors-list", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	authed.HandleFunc("/get-doctors", r.doctorHandler.AvailableDoctors).Methods(http.MethodGet)
	authed.HandleFunc("/doctor-profile/{id}", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/specializations", r.doctorHandler.ListSpecializations).Methods(http.MethodGet)
	authed.HandleFunc("/get-slots", r.availabilityHandler.GetSlots).Methods(http.MethodGet)
	authed.HandleFunc("/medical-file/{patient_id}", r.medicalRecordHandler.GetMedicalFile).Methods(http.MethodGet)

	// Consultation parties
	parties := api.NewRoute().Subrouter()
	parties.Use(r.authMiddleware.Authenticate)
	parties.Use(middleware.RequirePatientOrDoctor)
	parties.HandleFunc("/my-consultations", r.consultationHandler.ListMine).Methods(http.MethodGet)
	parties.HandleFunc("/cancel-consultation/{id:[0-9]+}", r.consultationHandler.Cancel).Methods(http.MethodPost)
	parties.HandleFunc("/delete-consultation/{id:[0-9]+}", r.consultationHandler.Delete).Methods(http.MethodPost)
	parties.HandleFunc("/edit-notes/{id:[0-9]+}", r.consultationHandler.EditNotes).Methods(http.MethodPost)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/consultation-form", r.consultationHandler.Book).Methods(http.MethodPost)

	// Doctor routes
	doctor := api.NewRoute().Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/availability-form", r.availabilityHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/availability-list", r.availabilityHandler.List).Methods(http.MethodGet)
	doctor.HandleFunc("/get-timetable", r.doctorHandler.GetTimetable).Methods(http.MethodGet)
	doctor.HandleFunc("/update-timetable", r.doctorHandler.UpdateTimetable).Methods(http.MethodPost)
	doctor.HandleFunc("/consultation-summary/{patient_id}", r.medicalRecordHandler.InsertSummary).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.corsMiddleware.Handle(middleware.RequestLogger(r.log)(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "OK", map[string]string{"status": "ok"})
}
