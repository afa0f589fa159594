package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"radio-orbit/internal/api/middleware"
	"radio-orbit/internal/assistant"
	"radio-orbit/internal/config"
	"radio-orbit/internal/favorites"
	"radio-orbit/internal/geometry"
	"radio-orbit/internal/radio"
	"radio-orbit/internal/recordings"
)

type Server struct {
	cfg        *config.Config
	engine     *radio.Engine
	assistant  *assistant.Client
	favorites  *favorites.Store
	recordings *recordings.Catalog
	geometry   *geometry.Client
	router     *gin.Engine
}

func New(cfg *config.Config, engine *radio.Engine, ai *assistant.Client,
	favs *favorites.Store, recs *recordings.Catalog, geom *geometry.Client) *Server {

	s := &Server{
		cfg:        cfg,
		engine:     engine,
		assistant:  ai,
		favorites:  favs,
		recordings: recs,
		geometry:   geom,
		router:     gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "radio-orbit"})
	})

	auth := middleware.RequireAuth([]byte(s.cfg.Auth.JWTSecret))

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/stations/country/:code", s.GetStationsByCountry)
		v1.GET("/stations/search", s.SearchStations)
		v1.POST("/stations/clusters", s.ClusterStations)

		v1.POST("/chat", s.Chat)

		v1.GET("/favorites", s.GetFavorites)
		v1.PUT("/favorites", auth, s.ReplaceFavorites)
		v1.POST("/favorites/toggle", auth, s.ToggleFavorite)

		v1.GET("/recordings", s.ListRecordings)
		v1.POST("/recordings", auth, s.UploadRecording)
		v1.GET("/recordings/:id/audio", s.StreamRecording)
		v1.DELETE("/recordings/:id", auth, s.DeleteRecording)

		v1.GET("/geometry/countries", s.GetCountryGeometry)
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
