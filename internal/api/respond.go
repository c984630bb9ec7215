package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shareit/internal/models"
)

// apiError is the error body shape shared by both tiers: the HTTP status is
// mirrored in errorCode.
type apiError struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"errorCode"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiError{Error: message, ErrorCode: statusCode})
}

// writeServiceError maps a domain error to its HTTP status. Anything outside
// the taxonomy falls through as 500 with the message in the body.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusFromErr(err), err.Error())
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, models.ErrItemNotAvailable),
		errors.Is(err, models.ErrCommentNotAllowed),
		errors.Is(err, models.ErrInvalidDates),
		errors.Is(err, models.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
