package httpx

import (
	"net/http"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
)

// SendOrder emails the business and the customer about an order. Delivery
// problems never fail the request: the report says what happened.
func (h *Handler) SendOrder(w http.ResponseWriter, r *http.Request) {
	h.sendOrder(w, r, false)
}

// SendOrderBackup is SendOrder restricted to the fallback sender.
func (h *Handler) SendOrderBackup(w http.ResponseWriter, r *http.Request) {
	h.sendOrder(w, r, true)
}

func (h *Handler) sendOrder(w http.ResponseWriter, r *http.Request, fallbackOnly bool) {
	var order domain.Order
	if !decode(w, r, &order) {
		return
	}
	if err := domain.ValidateContact(order); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var report domain.NotificationReport
	if fallbackOnly {
		report = h.notifier.NotifyOrderFallback(r.Context(), order)
	} else {
		report = h.notifier.NotifyOrder(r.Context(), order)
	}
	writeJSON(w, http.StatusOK, Envelope{Success: report.Success(), Data: report})
}

func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req TestEmailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.notifier.SendTest(r.Context(), req.TestEmail); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "Test email sent to " + req.TestEmail})
}
