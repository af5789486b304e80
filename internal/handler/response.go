package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"loantracker/internal/service"
	"loantracker/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError emits the {error: message} shape every failure shares.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps an error from the service layer to an HTTP response:
// validation problems surface verbatim as 400, unknown ids as 404 with the
// given message, and anything else as a generic 500. Internal detail is
// logged by the service and never leaks to the caller.
func respondError(w http.ResponseWriter, err error, notFoundMsg, genericMsg string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		writeError(w, http.StatusInternalServerError, genericMsg)
	}
}
