package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-carewatch/types"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "test-token", 2*time.Second)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "ok",
			"data": {
				"aqi": 172,
				"dominentpol": "pm25",
				"iaqi": {"t": {"v": 30.5}, "h": {"v": 62}, "w": {"v": 3.4}},
				"time": {"iso": "2026-08-27T10:00:00+05:30"}
			}
		}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server.URL).Fetch(context.Background(), "Delhi")
	require.NoError(t, err)
	require.NotNil(t, snapshot.AQI)
	assert.Equal(t, 172, *snapshot.AQI)
	assert.Equal(t, "Delhi", snapshot.Location)
	assert.Equal(t, 30.5, snapshot.Temperature)
	assert.Equal(t, 62, snapshot.Humidity)
	assert.Equal(t, 3.4, snapshot.WindSpeed)
	assert.False(t, snapshot.Fallback)
}

func TestFetchUnknownAqi(t *testing.T) {
	// Stations without a reading report aqi as "-".
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "data": {"aqi": "-", "iaqi": {}, "time": {}}}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server.URL).Fetch(context.Background(), "Delhi")
	require.NoError(t, err)
	assert.Nil(t, snapshot.AQI)
}

func TestFetchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Fetch(context.Background(), "Delhi")
	assert.ErrorIs(t, err, types.ErrRateLimited)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Fetch(context.Background(), "Delhi")
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}

func TestFetchProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "data": {}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Fetch(context.Background(), "Delhi")
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}

func TestFetchUncredentialed(t *testing.T) {
	client := NewClient("http://example.invalid", "", time.Second)
	_, err := client.Fetch(context.Background(), "Delhi")
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}

func TestFallbackSnapshotDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	a := FallbackSnapshot("Delhi", now)
	b := FallbackSnapshot("Delhi", now)
	require.NotNil(t, a.AQI)
	assert.Equal(t, *a.AQI, *b.AQI)
	assert.True(t, a.Fallback)

	unknown := FallbackSnapshot("Atlantis", now)
	require.NotNil(t, unknown.AQI)
	assert.Equal(t, 70, *unknown.AQI)
}
