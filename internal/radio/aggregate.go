package radio

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"radio-orbit/internal/models"
)

var (
	directoryQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbit_directory_queries_total",
			Help: "Directory queries issued by the aggregation engine",
		},
		[]string{"source", "status"},
	)
	aggregationResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbit_aggregation_result_size",
			Help:    "Stations returned per country aggregation",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(directoryQueries, aggregationResults)
}

// Engine combines the federated directory with the curated overlay into
// one deduplicated, popularity-ranked collection per country.
type Engine struct {
	client      *Client
	searchLimit int
}

func NewEngine(client *Client, searchLimit int) *Engine {
	return &Engine{client: client, searchLimit: searchLimit}
}

func queryStatus(res []models.Station) string {
	if len(res) == 0 {
		return "empty"
	}
	return "ok"
}

// StationsByCountry is the aggregation entry point. Both directory
// queries run concurrently and each absorbs its own failures, so a dead
// source costs completeness, never the whole result. The caller treats
// an empty slice as a valid "no stations" state.
func (e *Engine) StationsByCountry(ctx context.Context, countryCode, countryName string) []models.Station {
	aliases := CountryAliases(countryName)

	popularityFirst := map[string]string{
		"order":   "clickcount",
		"reverse": "true",
	}

	// Join-all-settle fan-out: both queries always run to completion
	// and each contributes whatever it got.
	var byCode, byName []models.Station
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		byCode = e.client.FetchStations(ctx, "/stations/bycountrycodeexact/"+url.PathEscape(countryCode), popularityFirst)
		directoryQueries.WithLabelValues("bycountrycode", queryStatus(byCode)).Inc()
	}()
	go func() {
		defer wg.Done()
		byName = e.client.FetchStations(ctx, "/stations/bycountry/"+url.PathEscape(countryName), popularityFirst)
		directoryQueries.WithLabelValues("bycountry", queryStatus(byName)).Inc()
	}()
	wg.Wait()

	// Code-query results first, so a station returned by both queries
	// keeps its code-query copy.
	seen := make(map[string]bool)
	var unique []models.Station
	for _, s := range append(byCode, byName...) {
		if seen[s.StationUUID] {
			continue
		}
		seen[s.StationUUID] = true
		unique = append(unique, s)
	}

	curated := CuratedStations(countryName, countryCode, aliases)

	// Curated entries are prepended before ranking. They usually carry
	// no click count, so the prepend is exactly what keeps curation
	// above organically ranked noise through the stable sort.
	combined := make([]models.Station, 0, len(curated)+len(unique))
	combined = append(combined, curated...)
	combined = append(combined, unique...)

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].ClickCount > combined[j].ClickCount
	})

	aggregationResults.Observe(float64(len(combined)))
	return combined
}

// SearchGlobal runs one free-text search across the whole directory.
// No curated overlay, no country scoping, same never-fails contract as
// the client underneath.
func (e *Engine) SearchGlobal(ctx context.Context, query string) []models.Station {
	return e.client.FetchStations(ctx, "/stations/search", map[string]string{
		"name":    query,
		"limit":   strconv.Itoa(e.searchLimit),
		"order":   "clickcount",
		"reverse": "true",
	})
}
