package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nhle/whop-starter/internal/guard"
	"github.com/nhle/whop-starter/internal/store"
	"github.com/nhle/whop-starter/internal/whop"
)

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, msg string, statusCode int) {
	writeJSON(w, map[string]any{"error": msg}, statusCode)
}

// writeErr maps domain errors to HTTP statuses. Unclassified errors are
// logged and answered with a generic 500.
func writeErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case guard.IsAuthenticationError(err):
		writeError(w, "not logged in", http.StatusUnauthorized)
	case guard.IsAuthorizationError(err):
		writeError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, store.ErrInvalidArgument):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound), whop.IsNotFound(err):
		writeError(w, "not found", http.StatusNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("request timed out", "error", err)
		writeError(w, "upstream timeout", http.StatusGatewayTimeout)
	default:
		log.Error("request failed", "error", err)
		writeError(w, "internal error", http.StatusInternalServerError)
	}
}
