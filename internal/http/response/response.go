// Package response provides JSON response helpers for code that
// answers requests outside the huma pipeline, such as middleware that
// rejects a request before any handler runs.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
)

// JSON writes v as a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, v); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Error writes an error response with the given status code. The body
// carries a single "error" field so middleware rejections stay uniform.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, struct {
		Error string `json:"error"`
	}{Error: message}, logger)
}
