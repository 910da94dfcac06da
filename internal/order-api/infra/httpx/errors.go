package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
)

// statusByKind maps domain error kinds to HTTP status codes. Kinds not
// listed are internal errors.
var statusByKind = map[string]int{
	"validation":         http.StatusBadRequest,
	"not_found":          http.StatusNotFound,
	"invalid_transition": http.StatusConflict,
	"timeout":            http.StatusGatewayTimeout,
}

func statusFor(err error) int {
	if code, ok := statusByKind[domain.Kind(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Error: msg})
}

// writeServiceError maps err to a response. Server side failures are logged
// with their cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", domain.Kind(err),
			"error", err,
		)
	}
	writeError(w, status, domain.Message(err))
}
