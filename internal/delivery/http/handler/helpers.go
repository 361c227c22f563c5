package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError maps a usecase error to its status code by kind. Errors of no
// known kind are logged and answered with the generic fallback message.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrState):
		response.Conflict(w, err.Error())
	default:
		log.Errorf("%s: %+v", fallback, err)
		response.InternalServerError(w, fallback)
	}
}

// currentActor reads the authenticated user. It writes 401 and returns false
// when the request did not pass through the auth middleware.
func currentActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Role information not found")
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func int64Var(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func uuidVar(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
