package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/httpx/middlewares"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/cache"
)

type RouterOptions struct {
	// AdminUser and AdminPassword enable basic auth on /api/admin when both
	// are set.
	AdminUser     string
	AdminPassword string

	// Cache enables idempotent order creation. Nil disables it.
	Cache          cache.Cache
	IdempotencyTTL time.Duration
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middlewares.AccessLog)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.Cache != nil {
				r.Use(middlewares.Idempotency(opts.Cache, opts.IdempotencyTTL))
			}
			r.Post("/orders", h.CreateOrder)
		})
		r.Get("/orders", h.ListCustomerOrders)

		r.Post("/send-order", h.SendOrder)
		r.Post("/send-order-backup", h.SendOrderBackup)
		r.Post("/test-email", h.TestEmail)

		r.Route("/admin", func(r chi.Router) {
			if opts.AdminUser != "" && opts.AdminPassword != "" {
				r.Use(middleware.BasicAuth("fitforge-admin", map[string]string{
					opts.AdminUser: opts.AdminPassword,
				}))
			}
			r.Get("/orders", h.ListRecentOrders)
			r.Put("/update-order", h.UpdateOrderStatus)
			r.Get("/stats", h.Stats)
			r.Get("/chart-data", h.ChartData)
			r.Get("/order-history", h.OrderHistory)
		})
	})
	return r
}
