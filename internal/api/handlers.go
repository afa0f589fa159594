package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"radio-orbit/internal/assistant"
	"radio-orbit/internal/geo"
	"radio-orbit/internal/models"
)

// GetStationsByCountry returns the aggregated, ranked station list for
// one country. Always 200; the engine absorbs source failures and
// answers an empty list.
func (s *Server) GetStationsByCountry(c *gin.Context) {
	code := c.Param("code")
	name := c.DefaultQuery("name", code)

	stations := s.engine.StationsByCountry(c.Request.Context(), code, name)
	if stations == nil {
		stations = []models.Station{}
	}
	c.JSON(http.StatusOK, stations)
}

// SearchStations runs a global free-text station search.
func (s *Server) SearchStations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	stations := s.engine.SearchGlobal(c.Request.Context(), query)
	if stations == nil {
		stations = []models.Station{}
	}
	c.JSON(http.StatusOK, stations)
}

// ClusterStations computes city clusters for the posted station list.
// With ?city= it returns just the exactly-matching cluster; with
// ?lat=&lng= the nearest one. Both selection helpers answer 404 when
// nothing matches.
func (s *Server) ClusterStations(c *gin.Context) {
	var stations []models.Station
	if err := c.ShouldBindJSON(&stations); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be a station list"})
		return
	}

	clusters := geo.Cluster(stations)

	if city := c.Query("city"); city != "" {
		cluster, ok := geo.FindCluster(clusters, city)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No cluster named " + city})
			return
		}
		c.JSON(http.StatusOK, cluster)
		return
	}

	if latStr, lngStr := c.Query("lat"), c.Query("lng"); latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat/lng must be numeric"})
			return
		}
		cluster, ok := geo.FindNearest(clusters, lat, lng)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No clusters to match against"})
			return
		}
		c.JSON(http.StatusOK, cluster)
		return
	}

	if clusters == nil {
		clusters = []models.CityCluster{}
	}
	c.JSON(http.StatusOK, clusters)
}

// Chat forwards one prompt to the assistant and splits the reply into
// display text and the optional search directive.
func (s *Server) Chat(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The 'prompt' field is required"})
		return
	}

	reply := s.assistant.Ask(c.Request.Context(), body.Prompt)
	clean, term, ok := assistant.ExtractSearch(reply)

	resp := gin.H{"text": clean}
	if ok {
		resp["searchTerm"] = term
	}
	c.JSON(http.StatusOK, resp)
}

// GetFavorites returns the persisted favorites list.
func (s *Server) GetFavorites(c *gin.Context) {
	stations, err := s.favorites.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stations == nil {
		stations = []models.Station{}
	}
	c.JSON(http.StatusOK, stations)
}

// ReplaceFavorites rewrites the whole favorites list. The store is a
// flat key-value slot, so full replacement is the native operation.
func (s *Server) ReplaceFavorites(c *gin.Context) {
	var stations []models.Station
	if err := c.ShouldBindJSON(&stations); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be a station list"})
		return
	}
	if err := s.favorites.Save(stations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stations)
}

// ToggleFavorite flips one station's membership and returns the
// resulting list.
func (s *Server) ToggleFavorite(c *gin.Context) {
	var station models.Station
	if err := c.ShouldBindJSON(&station); err != nil || station.StationUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be a station with an identifier"})
		return
	}

	list, err := s.favorites.Toggle(station)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListRecordings returns the clip catalog newest-first.
func (s *Server) ListRecordings(c *gin.Context) {
	recs, err := s.recordings.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recs == nil {
		recs = []models.Recording{}
	}
	c.JSON(http.StatusOK, recs)
}

// UploadRecording ingests one captured clip (multipart: file, station,
// duration).
func (s *Server) UploadRecording(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/webm"
	}

	rec, err := s.recordings.SaveClip(
		c.PostForm("station"),
		c.PostForm("duration"),
		contentType,
		file,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// StreamRecording serves one clip's audio blob.
func (s *Server) StreamRecording(c *gin.Context) {
	rec, obj, err := s.recordings.Open(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
		return
	}
	defer obj.Body.Close()

	contentType := rec.ContentType
	if contentType == "" {
		contentType = obj.ContentType
	}
	c.DataFromReader(http.StatusOK, obj.ContentLength, contentType, obj.Body, nil)
}

// DeleteRecording removes a clip and its catalog entry.
func (s *Server) DeleteRecording(c *gin.Context) {
	if err := s.recordings.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetCountryGeometry serves the cached boundary document for the globe.
func (s *Server) GetCountryGeometry(c *gin.Context) {
	body, err := s.geometry.Countries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
