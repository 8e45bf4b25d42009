//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestID_Generated(t *testing.T) {
	resp, _ := doGET(t, "/livez")
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestID_Echoed(t *testing.T) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, baseURL+"/livez", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "custom-request-id-12345")

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "custom-request-id-12345", resp.Header.Get("X-Request-ID"))
}

func TestCORS_Preflight(t *testing.T) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodOptions, baseURL+"/item", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestRateLimit_Headers(t *testing.T) {
	resp, _ := doGET(t, "/item")
	require.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))
	require.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))
}
