package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/apexgym/members/internal/validation"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and a
// fixed, safe message. Internal error text never goes to the client.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFieldErrors reports per-field validation failures. The view name
// tells the client which form to re-render with the messages.
func writeFieldErrors(w http.ResponseWriter, status int, view string, errs validation.Errors) {
	writeJSON(w, status, map[string]any{
		"view":   view,
		"errors": errs,
	})
}
