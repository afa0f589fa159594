package radio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"radio-orbit/internal/models"
)

func fed(uuid, name string, clicks int) models.Station {
	return models.Station{
		StationUUID: uuid,
		Name:        name,
		URL:         "http://" + uuid + "/stream",
		URLResolved: "http://" + uuid + "/stream",
		ClickCount:  clicks,
	}
}

// mockDirectory serves canned payloads per directory endpoint. A nil
// payload makes that endpoint answer 500, simulating a dead source.
func mockDirectory(t *testing.T, byCode, byName []models.Station) *Engine {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload []models.Station
		switch {
		case strings.HasPrefix(r.URL.Path, "/stations/bycountrycodeexact/"):
			payload = byCode
		case strings.HasPrefix(r.URL.Path, "/stations/bycountry/"):
			payload = byName
		}
		if payload == nil {
			http.Error(w, "source down", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)

	return NewEngine(&Client{
		http:         &http.Client{Timeout: 2 * time.Second},
		preferred:    srv.URL,
		userAgent:    "RadioOrbit/test",
		defaultLimit: 1000,
	}, 500)
}

func federatedUUIDs(stations []models.Station) map[string]bool {
	out := make(map[string]bool)
	for _, s := range stations {
		if !strings.HasPrefix(s.StationUUID, "m-") {
			out[s.StationUUID] = true
		}
	}
	return out
}

func TestStationsByCountryDedup(t *testing.T) {
	a, b, c := fed("a", "Alpha", 5), fed("b", "Beta", 4), fed("c", "Gamma", 3)
	engine := mockDirectory(t, []models.Station{a, b}, []models.Station{b, c})

	// Germany has no curated overlay, so the result is purely federated.
	got := engine.StationsByCountry(context.Background(), "DE", "Germany")
	if len(got) != 3 {
		t.Fatalf("expected 3 unique stations, got %d", len(got))
	}

	seen := make(map[string]int)
	for _, s := range got {
		seen[s.StationUUID]++
	}
	for uuid, n := range seen {
		if n != 1 {
			t.Errorf("station %q appears %d times after dedup", uuid, n)
		}
	}
}

func TestStationsByCountryIdempotentFederatedSet(t *testing.T) {
	a, b := fed("a", "Alpha", 5), fed("b", "Beta", 4)
	engine := mockDirectory(t, []models.Station{a, b}, []models.Station{b})

	first := federatedUUIDs(engine.StationsByCountry(context.Background(), "CL", "Chile"))
	second := federatedUUIDs(engine.StationsByCountry(context.Background(), "CL", "Chile"))

	if len(first) != len(second) {
		t.Fatalf("federated set size changed between identical calls: %d vs %d", len(first), len(second))
	}
	for uuid := range first {
		if !second[uuid] {
			t.Errorf("federated station %q missing on second call", uuid)
		}
	}
}

func TestStationsByCountryPartialFailure(t *testing.T) {
	a, b := fed("a", "Alpha", 5), fed("b", "Beta", 4)
	engine := mockDirectory(t, nil, []models.Station{a, b}) // code query is down

	got := engine.StationsByCountry(context.Background(), "CL", "Chile")

	fedSet := federatedUUIDs(got)
	if len(fedSet) != 2 || !fedSet["a"] || !fedSet["b"] {
		t.Fatalf("name-query results lost when code query failed: %v", fedSet)
	}

	// Chile has one curated station; it must still be present.
	curatedCount := len(got) - len(fedSet)
	if curatedCount != 1 {
		t.Errorf("expected 1 curated station alongside federated results, got %d", curatedCount)
	}
}

func TestStationsByCountryBothSourcesDown(t *testing.T) {
	engine := mockDirectory(t, nil, nil)

	// Germany: no curated fallback either, so the valid answer is empty.
	if got := engine.StationsByCountry(context.Background(), "DE", "Germany"); len(got) != 0 {
		t.Errorf("expected empty collection when every source fails, got %d", len(got))
	}
}

func TestStationsByCountryFirstOccurrenceWins(t *testing.T) {
	codeCopy := fed("dup", "Code Copy", 99)
	nameCopy := fed("dup", "Name Copy", 1)
	engine := mockDirectory(t, []models.Station{codeCopy}, []models.Station{nameCopy})

	got := engine.StationsByCountry(context.Background(), "DE", "Germany")
	if len(got) != 1 {
		t.Fatalf("expected 1 station after dedup, got %d", len(got))
	}
	if got[0].Name != "Code Copy" || got[0].ClickCount != 99 {
		t.Errorf("dedup kept the wrong copy: %+v", got[0])
	}
}

func TestStationsByCountryStableRanking(t *testing.T) {
	a, b, c := fed("a", "A", 50), fed("b", "B", 50), fed("c", "C", 10)
	engine := mockDirectory(t, []models.Station{a, b, c}, []models.Station{})

	got := engine.StationsByCountry(context.Background(), "CL", "Chile")
	if len(got) != 4 { // 3 federated + 1 curated
		t.Fatalf("expected 4 stations, got %d", len(got))
	}

	// Clicked stations outrank the zero-click curated entry, equal
	// clicks keep their input order, and the curated entry stays ahead
	// of nothing only because everything here has clicks.
	wantOrder := []string{"A", "B", "C", "Radio Navarino 104.5 FM"}
	for i, want := range wantOrder {
		if got[i].Name != want {
			t.Fatalf("rank %d = %q, want %q (full order: %v)", i, got[i].Name, want, names(got))
		}
	}
}

func TestStationsByCountryCuratedAboveZeroClickNoise(t *testing.T) {
	// With no organic clicks anywhere, curation surfaces on top purely
	// by being prepended before the stable sort.
	a, b := fed("a", "Zero A", 0), fed("b", "Zero B", 0)
	engine := mockDirectory(t, []models.Station{a, b}, []models.Station{})

	got := engine.StationsByCountry(context.Background(), "CL", "Chile")
	if len(got) != 3 {
		t.Fatalf("expected 3 stations, got %d", len(got))
	}
	if !strings.HasPrefix(got[0].StationUUID, "m-") {
		t.Errorf("curated station not first among zero-click results: %v", names(got))
	}
	if got[1].Name != "Zero A" || got[2].Name != "Zero B" {
		t.Errorf("zero-click federated order not preserved: %v", names(got))
	}
}

func TestSearchGlobal(t *testing.T) {
	var gotPath, gotLimit, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotName = r.URL.Query().Get("name")
		json.NewEncoder(w).Encode([]models.Station{fed("s", "Salsa FM", 7)})
	}))
	defer srv.Close()

	engine := NewEngine(&Client{
		http:         &http.Client{Timeout: 2 * time.Second},
		preferred:    srv.URL,
		userAgent:    "RadioOrbit/test",
		defaultLimit: 1000,
	}, 500)

	got := engine.SearchGlobal(context.Background(), "Cali Salsa")
	if len(got) != 1 || got[0].Name != "Salsa FM" {
		t.Fatalf("unexpected search result: %v", got)
	}
	if gotPath != "/stations/search" {
		t.Errorf("search hit %q", gotPath)
	}
	if gotLimit != "500" {
		t.Errorf("search limit = %q, want 500", gotLimit)
	}
	if gotName != "Cali Salsa" {
		t.Errorf("search term = %q", gotName)
	}
}

func names(stations []models.Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.Name
	}
	return out
}
