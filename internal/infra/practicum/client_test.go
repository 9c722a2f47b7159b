package practicum

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token", discardLogger())
	c.endpoint = srv.URL
	c.httpClient = srv.Client()
	return c
}

func TestFetchSendsCredentialAndWindow(t *testing.T) {
	var gotAuth, gotFromDate string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks":[{"homework_name":"hw1","status":"approved"}],"current_date":1700000000}`))
	})

	payload, err := c.Fetch(context.Background(), 1700000000)

	require.NoError(t, err)
	assert.Equal(t, "OAuth test-token", gotAuth)
	assert.Equal(t, "1700000000", gotFromDate)

	response, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, response, "homeworks")
}

func TestFetchNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	_, err := c.Fetch(context.Background(), 0)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusServiceUnavailable, reqErr.StatusCode)
	assert.Contains(t, err.Error(), c.endpoint)
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient("test-token", discardLogger())
	c.endpoint = srv.URL
	srv.Close() // Refuses connections from here on.

	_, err := c.Fetch(context.Background(), 0)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Error(t, reqErr.Err)
}

func TestFetchMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := c.Fetch(context.Background(), 0)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Error(t, reqErr.Err)
}

func TestFetchReturnsBodyVerbatim(t *testing.T) {
	// Shape checks belong to the validator: a JSON array decodes fine here.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1, 2]`))
	})

	payload, err := c.Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.IsType(t, []any{}, payload)
}

func TestFetchCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, 0)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}
