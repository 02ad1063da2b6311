package offchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"mint-market.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

func TestHTTPFetcher_FetchJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Sunrise","image":"https://cdn.example.com/sunrise.png"}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	var doc struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	require.NoError(t, f.FetchJSON(context.Background(), srv.URL, &doc))
	require.Equal(t, "Sunrise", doc.Name)
	require.Equal(t, "https://cdn.example.com/sunrise.png", doc.Image)
}

func TestHTTPFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	var doc map[string]any
	err := f.FetchJSON(context.Background(), srv.URL, &doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status code 404")
	require.Equal(t, int32(1), calls.Load())
}

func TestHTTPFetcher_RateLimitIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	var doc map[string]any
	require.NoError(t, f.FetchJSON(context.Background(), srv.URL, &doc))
	require.Equal(t, "ok", doc["name"])
	require.Equal(t, int32(2), calls.Load())
}

func TestHTTPFetcher_NetworkErrorEventuallyGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	f := NewHTTPFetcher(time.Second)
	f.maxElapsed = 10 * time.Millisecond

	var doc map[string]any
	err := f.FetchJSON(context.Background(), srv.URL, &doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "perform request")
}

func TestHTTPFetcher_BadJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	var doc map[string]any
	err := f.FetchJSON(context.Background(), srv.URL, &doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshal")
}
