package models

// Station is the normalized record for one radio stream source.
// Field names and JSON tags mirror the radio-browser wire format so
// directory responses decode straight into it.
type Station struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Tags        string `json:"tags"` // comma-separated, no defined order
	Country     string `json:"country"`
	CountryCode string `json:"countrycode"`
	State       string `json:"state"`
	City        string `json:"city"` // empty string when unknown, never omitted
	Language    string `json:"language"`
	Votes       int    `json:"votes"`
	ClickCount  int    `json:"clickcount"` // directory popularity, ranking key
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`

	// Both present or both nil. The directory reports null for
	// stations it cannot place.
	GeoLat  *float64 `json:"geo_lat"`
	GeoLong *float64 `json:"geo_long"`
}

// Geolocated reports whether the station carries a usable coordinate pair.
func (s Station) Geolocated() bool {
	return s.GeoLat != nil && s.GeoLong != nil
}

// CityCluster is a derived map marker: stations grouped under one place
// name with a centroid for globe placement. Recomputed on every station
// set change, never stored.
type CityCluster struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	StationCount int     `json:"stationCount"`
}
