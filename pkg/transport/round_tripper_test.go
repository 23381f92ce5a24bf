package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easymed/billing/pkg/logger"
	"github.com/easymed/billing/pkg/transport"
)

func TestLoggingRoundTripper_PropagatesRequestID(t *testing.T) {
	t.Parallel()

	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
	}))
	defer srv.Close()

	client := &http.Client{Transport: transport.NewLoggingRoundTripper(http.DefaultTransport)}

	ctx := logger.WithRequestID(context.Background(), "req-42")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, "req-42", gotRequestID)
}

func TestLoggingRoundTripper_NoRequestID(t *testing.T) {
	t.Parallel()

	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
	}))
	defer srv.Close()

	client := &http.Client{Transport: transport.NewLoggingRoundTripper(http.DefaultTransport)}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Empty(t, gotRequestID)
}
