package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-attendance/internal/geofence"
	"go-attendance/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colombo = geofence.Point{Latitude: 6.927079, Longitude: 79.861243}

func TestClient_Reverse(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "6.927079", r.URL.Query().Get("lat"))
		assert.Equal(t, "79.861243", r.URL.Query().Get("lon"))
		assert.Equal(t, "go-attendance-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"display_name":"Galle Face, Colombo 03, Sri Lanka"}`))
	}))
	defer srv.Close()

	store := kvstore.NewMemoryStore()
	c := NewClient(Options{BaseURL: srv.URL, UserAgent: "go-attendance-test", RPS: 100, Store: store})

	addr := c.Reverse(context.Background(), colombo)
	assert.Equal(t, "Galle Face, Colombo 03, Sri Lanka", addr)

	// Served from cache: a point a few meters away rounds to the same key.
	near := geofence.Point{Latitude: 6.92709, Longitude: 79.86122}
	assert.Equal(t, addr, c.Reverse(context.Background(), near))
	assert.Equal(t, int32(1), calls.Load())

	cached, err := kvstore.Load(context.Background(), store, CacheKey(colombo))
	require.NoError(t, err)
	assert.Equal(t, addr, cached)
}

func TestClient_ReverseFailuresAreEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"unable to geocode", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"error":"Unable to geocode"}`)) }},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			store := kvstore.NewMemoryStore()
			c := NewClient(Options{BaseURL: srv.URL, RPS: 100, Store: store})

			assert.Equal(t, "", c.Reverse(context.Background(), colombo))
			_, err := kvstore.Load(context.Background(), store, CacheKey(colombo))
			assert.ErrorIs(t, err, kvstore.ErrNotFound)
		})
	}
}

func TestClient_ReverseUnreachable(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1", RPS: 100, Timeout: 200 * time.Millisecond})
	assert.Equal(t, "", c.Reverse(context.Background(), colombo))
}

func TestClient_ReverseCollapsesConcurrentLookups(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"display_name":"Fort, Colombo"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, RPS: 100})

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Reverse(context.Background(), colombo)
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "Fort, Colombo", r)
	}
}

func TestClient_ReverseDoesNotQueueOnRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"display_name":"Somewhere"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, RPS: 1})

	points := []geofence.Point{
		{Latitude: 6.90, Longitude: 79.85},
		{Latitude: 6.91, Longitude: 79.86},
		{Latitude: 6.92, Longitude: 79.87},
		{Latitude: 6.93, Longitude: 79.88},
	}
	results := make([]string, len(points))

	start := time.Now()
	var wg sync.WaitGroup
	for i, p := range points {
		wg.Add(1)
		go func(i int, p geofence.Point) {
			defer wg.Done()
			results[i] = c.Reverse(context.Background(), p)
		}(i, p)
	}
	wg.Wait()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	resolved := 0
	for _, r := range results {
		if r != "" {
			resolved++
		}
	}
	assert.Equal(t, 1, resolved)
}

func TestClient_ReverseBudget(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Options{BaseURL: srv.URL, RPS: 100, Budget: 50 * time.Millisecond})

	start := time.Now()
	assert.Equal(t, "", c.Reverse(context.Background(), colombo))
	assert.Less(t, time.Since(start), time.Second)
}

func TestNoop(t *testing.T) {
	assert.Equal(t, "", Noop{}.Reverse(context.Background(), colombo))
}
