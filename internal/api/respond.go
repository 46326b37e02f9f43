// Package api holds the JSON response helpers shared by every handler.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/envoyhq/envoy-backend/internal/apperr"
)

func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Error writes the JSON error body for err using the apperr status mapping.
func Error(w http.ResponseWriter, err error) {
	Respond(w, apperr.Status(err), map[string]string{"error": apperr.Message(err)})
}

// ErrorDetail is Error with a separate detail string, used where the original
// wire contract exposes the store's failure message alongside a stable error.
func ErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	Respond(w, status, map[string]string{"error": message, "detail": detail})
}
