package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError replies with a JSON envelope to htmx requests and plain text
// otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeError(w, r, status, code, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	msg = sanitize(msg, 512)
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Error:     sanitize(code, 80),
			Message:   msg,
			Status:    status,
			RequestID: chimw.GetReqID(r.Context()),
		})
		return
	}
	http.Error(w, msg, status)
}

func sanitize(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
