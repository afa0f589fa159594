package geometry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCountriesFallbackAndCache(t *testing.T) {
	var primaryHits, fallbackHits atomic.Int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits.Add(1)
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHits.Add(1)
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer fallback.Close()

	c := &Client{
		http:     &http.Client{Timeout: 2 * time.Second},
		primary:  primary.URL,
		fallback: fallback.URL,
	}

	body, err := c.Countries(context.Background())
	if err != nil {
		t.Fatalf("Countries with working fallback: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("empty geometry document")
	}

	// Second call must come out of the cache, not the network.
	if _, err := c.Countries(context.Background()); err != nil {
		t.Fatal(err)
	}
	if primaryHits.Load() != 1 || fallbackHits.Load() != 1 {
		t.Errorf("expected exactly one fetch per source, got primary=%d fallback=%d",
			primaryHits.Load(), fallbackHits.Load())
	}
}

func TestCountriesBothSourcesDown(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer dead.Close()

	c := &Client{
		http:     &http.Client{Timeout: 2 * time.Second},
		primary:  dead.URL,
		fallback: dead.URL,
	}

	if _, err := c.Countries(context.Background()); err == nil {
		t.Error("expected an error when both geometry sources fail")
	}
}
