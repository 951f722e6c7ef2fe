package handlers

import (
	"encoding/json"
	"net/http"

	"file-bag/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding or write errors are logged; there is nothing else to do for them
// in a handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logging.Error("failed to encode JSON error response: %v", err)
	}
}
