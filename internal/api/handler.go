// Package api exposes the storefront domain over HTTP. Routes are registered
// on a chi router; domain errors are mapped to status codes in one place.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/domain/cart"
	"github.com/storefront-labs/storefront/internal/domain/item"
	"github.com/storefront-labs/storefront/internal/domain/order"
	"github.com/storefront-labs/storefront/internal/domain/user"
)

// Handler holds the domain services behind the HTTP surface.
type Handler struct {
	users  *user.Service
	items  item.Repository
	carts  *cart.Service
	orders *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	users *user.Service,
	items item.Repository,
	carts *cart.Service,
	orders *order.Service,
) *Handler {
	return &Handler{
		users:  users,
		items:  items,
		carts:  carts,
		orders: orders,
	}
}

// Register attaches every API route to the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/user/id/{id}", h.getUserByID)
	r.Get("/user/{username}", h.getUserByUsername)
	r.Post("/user/create", h.createUser)

	r.Get("/item", h.listItems)
	r.Get("/item/id/{id}", h.getItemByID)
	r.Get("/item/name/{name}", h.getItemsByName)

	r.Post("/cart", h.addToCart)
	r.Delete("/cart", h.removeFromCart)

	r.Post("/order/submit/{username}", h.submitOrder)
	r.Get("/order/history/{username}", h.orderHistory)
}

// errorResponse is the JSON body for 4xx/5xx responses that carry a message.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

// writeDomainError maps domain errors to the HTTP contract: missing entities
// become a bare 404, validation and conflict failures become a 400 with a
// message, and anything else is a 500 that leaks no internal detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, item.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)

	case errors.Is(err, user.ErrPasswordTooShort),
		errors.Is(err, user.ErrPasswordMismatch),
		errors.Is(err, user.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		var iqErr *cart.InvalidQuantityError
		if errors.As(err, &iqErr) {
			writeError(w, http.StatusBadRequest, iqErr.Error())
			return
		}

		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
