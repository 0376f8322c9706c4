package gtfsrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsAPIKeyHeader(t *testing.T) {
	now := time.Now().UTC()
	payload := buildFeed(t, tripSpec{route: "L", stops: []stopTimeSpec{
		{stopID: "L14N", arrival: now.Add(2 * time.Minute).Unix()},
	}})

	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient("secret-key", time.Second)
	arrivals, err := c.Arrivals(context.Background(), srv.URL, "L14N")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
	require.Len(t, arrivals, 1)
	assert.Equal(t, "L", arrivals[0].RouteID)
}

func TestClient_OmitsHeaderWithoutKey(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["X-Api-Key"]
		_, _ = w.Write(buildFeed(t))
	}))
	defer srv.Close()

	c := NewClient("", time.Second)
	_, err := c.Arrivals(context.Background(), srv.URL, "L14N")
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestClient_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("key", time.Second)
	_, err := c.Arrivals(context.Background(), srv.URL, "L14N")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestClient_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	c := NewClient("key", 10*time.Second)
	_, err := c.Arrivals(ctx, srv.URL, "L14N")
	assert.Error(t, err)
}
