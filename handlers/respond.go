package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MArjun666/ProjectFlow-fullstack-app/logging"
	"github.com/MArjun666/ProjectFlow-fullstack-app/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError translates the service error taxonomy into HTTP statuses.
// Anything outside the taxonomy is logged and reported as a generic 500 so no
// internal detail leaks to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		logging.Logger.Errorf("Unexpected error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "An unexpected internal error occurred")
	}
}
