package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Every error a usecase returns on purpose wraps exactly one of
// these, so the delivery layer can map it to a status code with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrState      = errors.New("invalid state")
)

type domainError struct {
	kind error
	err  error
}

func (e *domainError) Error() string {
	return e.err.Error()
}

func (e *domainError) Unwrap() []error {
	return []error{e.kind, e.err}
}

func newError(kind error, msg string) error {
	return &domainError{kind: kind, err: errors.New(msg)}
}

func validationError(msg string) error {
	return newError(ErrValidation, msg)
}

// asValidation tags err with the validation kind, keeping err itself
// reachable through errors.Is.
func asValidation(err error) error {
	return &domainError{kind: ErrValidation, err: err}
}

var (
	ErrInvalidDate            = validationError("invalid date format, use YYYY-MM-DD")
	ErrDoctorNotFound         = newError(ErrNotFound, "doctor not found")
	ErrPatientNotFound        = newError(ErrNotFound, "patient not found")
	ErrServiceNotFound        = newError(ErrNotFound, "service not found")
	ErrSlotNotFound           = newError(ErrNotFound, "availability slot not found")
	ErrSpecializationMismatch = validationError("the selected doctor does not have this specialization")
	ErrSlotMismatch           = validationError("the selected slot does not belong to this doctor and date")
	ErrSlotUnavailable        = newError(ErrState, "slot is no longer available")
	ErrSlotOverlap            = validationError("one of the slots overlaps with an existing slot")
	ErrDateInPast             = validationError("the date must be in the future")

	ErrConsultationNotFound = newError(ErrNotFound, "consultation not found")
	ErrNotConsultationParty = newError(ErrForbidden, "you are not a party to this consultation")
	ErrAlreadyCancelled     = newError(ErrState, "consultation is already cancelled")
	ErrCancelPast           = newError(ErrState, "cannot cancel past consultations")
	ErrDeleteActive         = newError(ErrState, "only past or cancelled consultations can be deleted")
	ErrNotesNotOwner        = newError(ErrForbidden, "only the patient can edit consultation notes")
	ErrNotesInactive        = newError(ErrState, "you can only edit notes for active consultations")
	ErrRoleNotSupported     = newError(ErrForbidden, "consultations are only available to patients and doctors")
	ErrInvalidStatusFilter  = validationError("invalid status filter")

	ErrMedicalRecordNotFound = newError(ErrNotFound, "medical record not found")
	ErrMedicalFileForbidden  = newError(ErrForbidden, "you are not allowed to view this medical file")
	ErrSummaryFieldsRequired = validationError("all fields are required")

	ErrAuditLogNotFound = newError(ErrNotFound, "audit log not found")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
