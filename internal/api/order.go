package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-labs/storefront/internal/domain/order"
)

type orderResponse struct {
	ID        string         `json:"id"`
	Items     []itemResponse `json:"items"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		Items:     toItemResponses(o.Items),
		Total:     o.Total.InexactFloat64(),
		CreatedAt: o.CreatedAt,
	}
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Submit(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.History(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	writeJSON(w, http.StatusOK, out)
}
