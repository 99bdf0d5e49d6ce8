package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sjsu-mhc/concierge/internal/apperr"
)

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondAppError renders an application error in the shared envelope,
// mapping its code onto the HTTP status.
func RespondAppError(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	RespondJSON(w, appErr.HTTPStatus(), map[string]any{
		"success":   false,
		"error":     appErr.Code,
		"message":   appErr.Message,
		"details":   appErr.Details,
		"timestamp": appErr.Timestamp,
	})
}
