package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/storefront-labs/storefront/internal/domain/cart"
)

type cartResponse struct {
	ID    string         `json:"id"`
	Items []itemResponse `json:"items"`
	Total float64        `json:"total"`
}

// modifyCartRequest is shared by the add and remove endpoints.
type modifyCartRequest struct {
	Username string `json:"username"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	return cartResponse{
		ID:    c.ID,
		Items: toItemResponses(c.Items),
		Total: c.Total.InexactFloat64(),
	}
}

type cartOp func(ctx context.Context, username, itemID string, quantity int) (*cart.Cart, error)

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	h.modifyCart(w, r, h.carts.Add)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.modifyCart(w, r, h.carts.Remove)
}

func (h *Handler) modifyCart(w http.ResponseWriter, r *http.Request, op cartOp) {
	var req modifyCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := op(r.Context(), req.Username, req.ItemID, req.Quantity)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}
