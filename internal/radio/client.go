package radio

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"radio-orbit/internal/config"
	"radio-orbit/internal/models"
)

// Client issues queries against the federated station directory.
type Client struct {
	http         *http.Client
	mirrors      []string
	preferred    string
	userAgent    string
	defaultLimit int
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:         &http.Client{Timeout: time.Duration(cfg.Directory.TimeoutSeconds) * time.Second},
		mirrors:      cfg.Directory.Mirrors,
		preferred:    cfg.Directory.Preferred,
		userAgent:    cfg.Directory.UserAgent,
		defaultLimit: cfg.Directory.CountryLimit,
	}
}

// baseURL resolves the directory base for one request. Every mirror
// serves the same logical dataset, so the choice is not correctness
// critical: use the preferred round-robin host when configured, else a
// uniformly random pick from the mirror list.
func (c *Client) baseURL() string {
	if c.preferred != "" {
		return c.preferred
	}
	if len(c.mirrors) == 0 {
		return "https://all.api.radio-browser.info/json"
	}
	return c.mirrors[rand.Intn(len(c.mirrors))]
}

// rawStation is the untyped-ish directory record before normalization.
// The directory reports null coordinates for unplaced stations.
type rawStation struct {
	StationUUID string   `json:"stationuuid"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	URLResolved string   `json:"url_resolved"`
	Homepage    string   `json:"homepage"`
	Favicon     string   `json:"favicon"`
	Tags        string   `json:"tags"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countrycode"`
	State       string   `json:"state"`
	City        string   `json:"city"`
	Language    string   `json:"language"`
	Votes       int      `json:"votes"`
	ClickCount  int      `json:"clickcount"`
	Codec       string   `json:"codec"`
	Bitrate     int      `json:"bitrate"`
	GeoLat      *float64 `json:"geo_lat"`
	GeoLong     *float64 `json:"geo_long"`
}

// normalize is the single boundary from a raw directory record to a
// Station. Every field gets an explicit value here; nothing half-shaped
// crosses it.
func normalize(r rawStation) models.Station {
	resolved := r.URLResolved
	if resolved == "" {
		resolved = r.URL
	}

	lat, lng := r.GeoLat, r.GeoLong
	if lat == nil || lng == nil {
		lat, lng = nil, nil
	}

	return models.Station{
		StationUUID: r.StationUUID,
		Name:        r.Name,
		URL:         resolved,
		URLResolved: resolved,
		Homepage:    r.Homepage,
		Favicon:     r.Favicon,
		Tags:        r.Tags,
		Country:     r.Country,
		CountryCode: r.CountryCode,
		State:       r.State,
		City:        r.City, // already "" when absent, never null on this side
		Language:    r.Language,
		Votes:       r.Votes,
		ClickCount:  r.ClickCount,
		Codec:       r.Codec,
		Bitrate:     r.Bitrate,
		GeoLat:      lat,
		GeoLong:     lng,
	}
}

// FetchStations queries one directory endpoint and normalizes the
// result. It never fails from the caller's perspective: any transport,
// status or parse problem degrades to an empty slice, so one bad source
// cannot abort an aggregation built on top of it. Records without a
// playable URL are dropped during normalization.
func (c *Client) FetchStations(ctx context.Context, endpoint string, params map[string]string) []models.Station {
	q := url.Values{}
	q.Set("hidebroken", "true")
	q.Set("limit", strconv.Itoa(c.defaultLimit))
	for k, v := range params {
		q.Set(k, v)
	}

	reqURL := c.baseURL() + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("⚠️ [Directory] %s failed: %v", endpoint, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ [Directory] %s returned status %d", endpoint, resp.StatusCode)
		return nil
	}

	var raw []rawStation
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Printf("⚠️ [Directory] %s decode failed: %v", endpoint, err)
		return nil
	}

	stations := make([]models.Station, 0, len(raw))
	for _, r := range raw {
		s := normalize(r)
		if s.URLResolved == "" {
			continue // no playable URL, not a station for our purposes
		}
		stations = append(stations, s)
	}
	return stations
}
