package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-labs/storefront/internal/domain/item"
)

type itemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func toItemResponse(it item.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price.InexactFloat64(),
	}
}

func toItemResponses(items []item.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *Handler) getItemByID(w http.ResponseWriter, r *http.Request) {
	it, err := h.items.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*it))
}

// getItemsByName returns all items whose name contains the path segment.
// An empty result is a 404, matching the catalog lookup contract.
func (h *Handler) getItemsByName(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.FindByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if len(items) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}
