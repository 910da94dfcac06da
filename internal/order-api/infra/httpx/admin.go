package httpx

import (
	"net/http"
)

func (h *Handler) ListRecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Recent(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.status.UpdateStatus(r.Context(), req.OrderNumber, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) ChartData(w http.ResponseWriter, r *http.Request) {
	data, summary, err := h.analytics.ChartData(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Summary: summary})
}

func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.status.History(r.Context(), r.URL.Query().Get("orderNumber"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, mapHistory(entries))
}
