package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

const maxBodyBytes = 1 << 20

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the storefront and admin endpoints.
type Handler struct {
	orders    ports.OrderService
	status    ports.StatusService
	analytics ports.AnalyticsService
	notifier  ports.Notifier
	store     Pinger

	// notifyOnCreate sends the order emails after every successful create.
	notifyOnCreate bool
}

type HandlerConfig struct {
	Orders         ports.OrderService
	Status         ports.StatusService
	Analytics      ports.AnalyticsService
	Notifier       ports.Notifier
	Store          Pinger
	NotifyOnCreate bool
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		orders:         cfg.Orders,
		status:         cfg.Status,
		analytics:      cfg.Analytics,
		notifier:       cfg.Notifier,
		store:          cfg.Store,
		notifyOnCreate: cfg.NotifyOnCreate && cfg.Notifier != nil,
	}
}

// decode reads a JSON body. It writes the 400 response itself and reports
// whether the caller may continue.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
