package middlewares

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/fitforge-orders/internal/pkg/cache"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/interceptors/constants"
)

// ReplayedHeader marks a response served from the idempotency cache.
const ReplayedHeader = "X-Idempotent-Replayed"

type storedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// Idempotency replays the stored response of a request that carried the same
// X-Idempotency-Key within ttl. Only 2xx responses are stored, so a rejected
// request can be corrected and retried under the same key. Requests without
// the header bypass the cache. Cache errors never fail a request.
func Idempotency(c cache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(constants.HeaderXIdempotencyKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			cacheKey := c.GenerateKey(r.Method+" "+r.URL.Path, key)

			raw, err := c.Get(r.Context(), cacheKey)
			if err != nil {
				slog.WarnContext(r.Context(), "idempotency lookup failed", "error", err)
			}
			if raw != "" {
				var stored storedResponse
				if err := json.Unmarshal([]byte(raw), &stored); err == nil {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set(ReplayedHeader, "true")
					w.WriteHeader(stored.Status)
					_, _ = w.Write(stored.Body)
					return
				}
			}

			var body bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return
			}
			encoded, err := json.Marshal(storedResponse{Status: status, Body: body.Bytes()})
			if err != nil {
				return
			}
			if err := c.Set(r.Context(), cacheKey, encoded, ttl); err != nil {
				slog.WarnContext(r.Context(), "idempotency store failed", "error", err)
			}
		})
	}
}
