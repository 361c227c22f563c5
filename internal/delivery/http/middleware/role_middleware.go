package middleware

import (
	"net/http"
	"slices"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/pkg/response"
)

// RequireRole lets the request through only when the role id placed in the
// context by Authenticate is one of roleIDs.
func RequireRole(roleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}
			if !slices.Contains(roleIDs, roleID) {
				response.Forbidden(w, "This page is not available for your role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards the audit trail.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireDoctor guards availability publishing, the weekly timetable and
// consultation summaries.
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor)(next)
}

// RequirePatient guards the booking form.
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}

// RequirePatientOrDoctor guards the endpoints either party of a consultation
// may call: listing, cancelling, deleting and editing notes. Admins are not
// a party to any consultation.
func RequirePatientOrDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient, entity.RoleIDDoctor)(next)
}
