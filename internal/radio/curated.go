package radio

import (
	_ "embed"
	"log"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"radio-orbit/internal/models"
)

//go:embed curated.yaml
var curatedYAML []byte

// CuratedEntry is a partial station template from the hand-maintained
// overlay table. Missing fields are filled in when the entry is
// completed into a Station at aggregation time.
type CuratedEntry struct {
	Name    string   `yaml:"name"`
	URL     string   `yaml:"url"`
	City    string   `yaml:"city"`
	State   string   `yaml:"state"`
	Tags    string   `yaml:"tags"`
	Codec   string   `yaml:"codec"`
	GeoLat  *float64 `yaml:"geo_lat"`
	GeoLong *float64 `yaml:"geo_long"`
}

var curatedTable map[string][]CuratedEntry

func init() {
	if err := yaml.Unmarshal(curatedYAML, &curatedTable); err != nil {
		log.Fatalf("❌ Curated station table is unparseable: %v", err)
	}
}

// lookupCurated resolves the overlay table key for a country,
// case-insensitively, against the display name or any alias. Returns
// ("", nil) when the country has no curated entries.
func lookupCurated(countryName string, aliases []string) (string, []CuratedEntry) {
	for key, entries := range curatedTable {
		if strings.EqualFold(key, countryName) {
			return key, entries
		}
		for _, a := range aliases {
			if strings.EqualFold(key, a) {
				return key, entries
			}
		}
	}
	return "", nil
}

// CuratedStations completes the overlay entries for a country into full
// Stations, in table order. Identifiers are synthesized fresh on every
// call. Country is the table's key spelling, which may differ from the
// caller's name; countrycode is always the caller's.
func CuratedStations(countryName, countryCode string, aliases []string) []models.Station {
	key, entries := lookupCurated(countryName, aliases)
	if key == "" {
		return nil
	}

	out := make([]models.Station, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.complete(key, countryCode))
	}
	return out
}

func (e CuratedEntry) complete(countryKey, countryCode string) models.Station {
	codec := e.Codec
	if codec == "" {
		switch {
		case strings.Contains(e.URL, ".m3u8"):
			codec = "HLS"
		case strings.Contains(e.URL, ".aac"):
			codec = "AAC"
		default:
			codec = "MP3"
		}
	}

	lat, lng := e.GeoLat, e.GeoLong
	if lat == nil || lng == nil {
		// A lone coordinate is useless for map placement.
		lat, lng = nil, nil
	}

	return models.Station{
		StationUUID: "m-" + uuid.NewString(),
		Name:        e.Name,
		URL:         e.URL,
		URLResolved: e.URL,
		Tags:        e.Tags,
		Country:     countryKey,
		CountryCode: countryCode,
		State:       e.State,
		City:        e.City,
		Codec:       codec,
		GeoLat:      lat,
		GeoLong:     lng,
	}
}
