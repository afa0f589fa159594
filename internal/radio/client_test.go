package radio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return &Client{
		http:         &http.Client{Timeout: 2 * time.Second},
		preferred:    baseURL,
		userAgent:    "RadioOrbit/test",
		defaultLimit: 1000,
	}
}

func serveStations(t *testing.T, stations []map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(stations)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchStationsNormalization(t *testing.T) {
	srv := serveStations(t, []map[string]any{
		{
			// url_resolved absent: must fall back to url
			"stationuuid": "u1",
			"name":        "Fallback FM",
			"url":         "http://one/stream",
			"geo_lat":     nil,
			"geo_long":    nil,
		},
		{
			// no playable URL at all: dropped
			"stationuuid": "u2",
			"name":        "Ghost FM",
			"url":         "",
		},
		{
			"stationuuid":  "u3",
			"name":         "Placed FM",
			"url":          "http://three/stream",
			"url_resolved": "http://three/resolved",
			"city":         "Cali",
			"geo_lat":      3.4516,
			"geo_long":     -76.5320,
		},
	})

	got := testClient(srv.URL).FetchStations(context.Background(), "/stations/bycountry/X", nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 stations after normalization, got %d", len(got))
	}

	if got[0].URLResolved != "http://one/stream" || got[0].URL != "http://one/stream" {
		t.Errorf("url_resolved fallback failed: %+v", got[0])
	}
	if got[0].City != "" {
		t.Errorf("absent city must normalize to empty string, got %q", got[0].City)
	}
	if got[0].Geolocated() {
		t.Error("station without coordinates reported as geolocated")
	}

	if got[1].URLResolved != "http://three/resolved" {
		t.Errorf("resolved URL not kept: %q", got[1].URLResolved)
	}
	if !got[1].Geolocated() {
		t.Error("station with both coordinates not reported as geolocated")
	}
}

func TestFetchStationsQueryDefaults(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.FetchStations(context.Background(), "/stations/search", map[string]string{
		"name":  "salsa",
		"limit": "500", // caller overrides the default cap
	})

	if gotQuery.Get("hidebroken") != "true" {
		t.Error("hidebroken filter not always enabled")
	}
	if gotQuery.Get("limit") != "500" {
		t.Errorf("caller limit must win, got %q", gotQuery.Get("limit"))
	}
	if gotQuery.Get("name") != "salsa" {
		t.Errorf("caller param lost, got %q", gotQuery.Get("name"))
	}

	c.FetchStations(context.Background(), "/stations/bycountry/X", nil)
	if gotQuery.Get("limit") != "1000" {
		t.Errorf("default limit = %q, want 1000", gotQuery.Get("limit"))
	}
}

func TestFetchStationsNeverFails(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()
		if got := testClient(srv.URL).FetchStations(context.Background(), "/stations/search", nil); len(got) != 0 {
			t.Errorf("expected empty result on 500, got %d", len(got))
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		}))
		defer srv.Close()
		if got := testClient(srv.URL).FetchStations(context.Background(), "/stations/search", nil); len(got) != 0 {
			t.Errorf("expected empty result on parse failure, got %d", len(got))
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // dead before the request
		if got := testClient(srv.URL).FetchStations(context.Background(), "/stations/search", nil); len(got) != 0 {
			t.Errorf("expected empty result on transport failure, got %d", len(got))
		}
	})
}

func TestBaseURLFallsBackToMirrors(t *testing.T) {
	c := &Client{mirrors: []string{"https://m1/json", "https://m2/json"}}
	for i := 0; i < 20; i++ {
		got := c.baseURL()
		if got != "https://m1/json" && got != "https://m2/json" {
			t.Fatalf("baseURL picked %q outside the mirror list", got)
		}
	}

	c.preferred = "https://all/json"
	if got := c.baseURL(); got != "https://all/json" {
		t.Errorf("preferred mirror not honored, got %q", got)
	}
}
