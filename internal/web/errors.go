package web

// errors.go provides unified error response handling for the web layer.
//
// Handlers log the technical error with the chi request ID for correlation
// and return a small JSON body to the client. Import pipeline failures are
// not routed through here: the importer already shapes those into its own
// result structure, which handlers return verbatim.

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the JSON body for non-import API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError logs the technical error and answers with a sanitized message.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)
	writeError(w, status, message)
}

// writeJSON encodes v as JSON with the given status code.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
