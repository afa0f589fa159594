package geo

import (
	"strings"

	"github.com/golang/geo/s2"

	"radio-orbit/internal/models"
)

// Cluster groups stations by place name and computes a centroid for map
// placement. Pure function over its input, recomputed from scratch on
// every station set change; there is no incremental state.
//
// Grouping key is the trimmed, lower-cased city, falling back to state
// when the city is empty. Keys shorter than two characters are too
// sparse to be a meaningful place name and are excluded entirely.
func Cluster(stations []models.Station) []models.CityCluster {
	groups := make(map[string][]models.Station)
	var order []string // first-seen key order keeps the output deterministic

	for _, s := range stations {
		raw := s.City
		if raw == "" {
			raw = s.State
		}
		key := strings.ToLower(strings.TrimSpace(raw))
		if len([]rune(key)) < 2 {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	var clusters []models.CityCluster
	for _, key := range order {
		group := groups[key]

		var latSum, lngSum float64
		geolocated := 0
		for _, s := range group {
			if s.Geolocated() {
				latSum += *s.GeoLat
				lngSum += *s.GeoLong
				geolocated++
			}
		}
		if geolocated == 0 {
			// Nothing to place: drop the group, never emit NaN.
			continue
		}

		name := group[0].City
		if name == "" {
			name = group[0].State
		}
		if name == "" {
			name = "Unknown"
		}

		clusters = append(clusters, models.CityCluster{
			Name: name,
			Lat:  latSum / float64(geolocated),
			Lng:  lngSum / float64(geolocated),
			// Count covers the whole group, not just the members that
			// contributed to the centroid.
			StationCount: len(group),
		})
	}
	return clusters
}

// FindCluster returns the cluster whose display name exactly equals
// name. At most one match, used to drive the single-cluster highlight.
func FindCluster(clusters []models.CityCluster, name string) (models.CityCluster, bool) {
	for _, c := range clusters {
		if c.Name == name {
			return c, true
		}
	}
	return models.CityCluster{}, false
}

// FindNearest resolves a raw map click to the closest cluster by
// spherical distance.
func FindNearest(clusters []models.CityCluster, lat, lng float64) (models.CityCluster, bool) {
	if len(clusters) == 0 {
		return models.CityCluster{}, false
	}

	from := s2.LatLngFromDegrees(lat, lng)
	best := 0
	bestDist := from.Distance(s2.LatLngFromDegrees(clusters[0].Lat, clusters[0].Lng))
	for i := 1; i < len(clusters); i++ {
		if d := from.Distance(s2.LatLngFromDegrees(clusters[i].Lat, clusters[i].Lng)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return clusters[best], true
}
