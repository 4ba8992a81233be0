package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chorepoint/chorepoint/internal/auth"
	"github.com/chorepoint/chorepoint/internal/service"
	"github.com/chorepoint/chorepoint/internal/storage"
	"github.com/chorepoint/chorepoint/internal/tokens"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain sentinel errors to HTTP status codes.
// Unrecognized errors are data-access or internal failures and map to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tokens.ErrInvalidAmount),
		errors.Is(err, auth.ErrInvalidPin),
		errors.Is(err, service.ErrInvalidReward),
		errors.Is(err, service.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tokens.ErrInsufficientBalance),
		errors.Is(err, service.ErrTaskAlreadyCompleted),
		errors.Is(err, service.ErrTaskNotCompleted),
		errors.Is(err, service.ErrRewardInactive):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPinMismatch),
		errors.Is(err, service.ErrNoPinSet):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotCaregiver):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
