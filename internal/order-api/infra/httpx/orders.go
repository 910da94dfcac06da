package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
)

// CreateOrder validates and stores an order placed at checkout.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.Order
	if !decode(w, r, &req) {
		return
	}

	order, err := h.orders.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "order created",
		"order_number", order.OrderNumber,
		"items", len(order.Items),
		"total", order.Total,
	)

	if h.notifyOnCreate {
		// Detached so the emails outlive the request while keeping its trace.
		go h.notify(context.WithoutCancel(r.Context()), *order)
	}

	writeData(w, http.StatusCreated, order)
}

const notifyTimeout = 30 * time.Second

func (h *Handler) notify(ctx context.Context, order domain.Order) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	report := h.notifier.NotifyOrder(ctx, order)
	if !report.Success() {
		slog.ErrorContext(ctx, "order notification failed", "order_number", order.OrderNumber)
	}
}

// ListCustomerOrders returns the orders matching ?identifier= by email or
// phone, newest first.
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.FindByCustomer(r.Context(), r.URL.Query().Get("identifier"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, orders)
}
