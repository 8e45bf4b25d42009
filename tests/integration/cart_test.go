//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func modifyCart(t *testing.T, method, username, itemID string, quantity int) (*http.Response, []byte) {
	t.Helper()
	return doJSON(t, method, "/cart", map[string]any{
		"username": username,
		"itemId":   itemID,
		"quantity": quantity,
	})
}

func TestCartAddAndTotal(t *testing.T) {
	registerUser(t, "it-cart-add")

	// Earplugs cost 120.00 in the seed catalog.
	resp, data := doGET(t, "/item/name/Earplugs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]itemResponse](t, data)
	require.NotEmpty(t, items)
	earplugs := items[0]

	resp, data = modifyCart(t, http.MethodPost, "it-cart-add", earplugs.ID, 3)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c := decode[cartResponse](t, data)
	require.Len(t, c.Items, 3)
	require.InDelta(t, 360.0, c.Total, 0.001)
}

func TestCartRemove_RoundTrip(t *testing.T) {
	registerUser(t, "it-cart-rt")
	it := firstItem(t)

	resp, _ := modifyCart(t, http.MethodPost, "it-cart-rt", it.ID, 2)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := modifyCart(t, http.MethodDelete, "it-cart-rt", it.ID, 2)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c := decode[cartResponse](t, data)
	require.Empty(t, c.Items)
	require.InDelta(t, 0.0, c.Total, 0.001)
}

func TestCartRemove_ClampsToPresent(t *testing.T) {
	registerUser(t, "it-cart-clamp")
	it := firstItem(t)

	resp, _ := modifyCart(t, http.MethodPost, "it-cart-clamp", it.ID, 2)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Removing more units than the cart holds empties it without error.
	resp, data := modifyCart(t, http.MethodDelete, "it-cart-clamp", it.ID, 5)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c := decode[cartResponse](t, data)
	require.Empty(t, c.Items)
}

func TestCartAdd_InvalidQuantity(t *testing.T) {
	registerUser(t, "it-cart-qty")
	it := firstItem(t)

	for _, qty := range []int{0, -1} {
		resp, data := modifyCart(t, http.MethodPost, "it-cart-qty", it.ID, qty)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "quantity %d", qty)
		e := decode[errorResponse](t, data)
		require.NotEmpty(t, e.Message)
	}
}

func TestCartAdd_UnknownUser(t *testing.T) {
	it := firstItem(t)

	resp, data := modifyCart(t, http.MethodPost, "it-cart-ghost", it.ID, 1)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Empty(t, data)
}

func TestCartAdd_UnknownItem(t *testing.T) {
	registerUser(t, "it-cart-noitem")

	resp, data := modifyCart(t, http.MethodPost, "it-cart-noitem", "no-such-item", 1)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Empty(t, data)
}
