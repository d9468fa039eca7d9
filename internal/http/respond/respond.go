// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Status returns the HTTP status for err. Import errors also wrap the
// validation error of the offending entry, so they are matched first.
func Status(err error) int {
	switch {
	case errors.Is(err, transaction.ErrImportFormat):
		return http.StatusBadRequest
	case errors.Is(err, transaction.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, transaction.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with the status from Status. Unexpected errors are logged
// and their text is not exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	switch {
	case errors.Is(err, transaction.ErrPersistence):
		slog.ErrorContext(r.Context(), "failed to persist transactions", "error", err)
		JSON(w, status, errorResponse{
			Error:  err.Error(),
			Detail: "the change is kept in memory but could not be saved",
		})
	case status == http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		Message(w, status, "internal error")
	default:
		Message(w, status, err.Error())
	}
}
