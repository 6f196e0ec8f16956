package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes a JSON payload with the given status. Handlers across
// the project receive this function instead of importing the package.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("JSON encoding error", "error", err)
	}
}

// RespondError writes the uniform error envelope. There is no structured
// error taxonomy: the store-layer message travels as-is.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}
