package api

import (
	"errors"
	"net/http"

	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/store"
)

// HandleServiceError maps service and store errors to HTTP responses.
// notFoundMessage customizes the 404 body; validation errors surface their
// message since they describe the request, not internals.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case store.IsNotFoundError(err):
		if notFoundMessage == "" {
			notFoundMessage = "Resource not found"
		}
		shared.RespondWithError(w, r, http.StatusNotFound, notFoundMessage)
	case store.IsDuplicateError(err):
		shared.RespondWithError(w, r, http.StatusConflict, duplicateMessage(err))
	case errors.Is(err, service.ErrValidation):
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An internal error occurred", err)
	}
}

func duplicateMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists."
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists."
	default:
		return "Resource already exists"
	}
}

// AuthFailureStatus maps an auth result failure kind to an HTTP status code.
func AuthFailureStatus(kind service.FailureKind) int {
	switch kind {
	case service.FailureValidation:
		return http.StatusBadRequest
	case service.FailureConflict:
		return http.StatusConflict
	case service.FailureUnauthorized:
		return http.StatusUnauthorized
	case service.FailureForbidden:
		return http.StatusForbidden
	case service.FailureUnimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
