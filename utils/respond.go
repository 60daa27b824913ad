// utils/respond.go
package utils

import (
	"encoding/json"
	"net/http"
)

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithValidationErrors returns a 400 carrying per-field reasons.
func RespondWithValidationErrors(w http.ResponseWriter, fieldErrors map[string]string) {
	RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrors})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
