package common

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// GenerateUUID returns a fresh random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteErrorResponse writes a JSON error body to a plain http.ResponseWriter.
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
