package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radio-orbit/internal/api"
	"radio-orbit/internal/assistant"
	"radio-orbit/internal/config"
	database "radio-orbit/internal/db"
	"radio-orbit/internal/favorites"
	"radio-orbit/internal/geometry"
	"radio-orbit/internal/radio"
	"radio-orbit/internal/recordings"
	"radio-orbit/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Radio Orbit API Server...")

	// Local development convenience; missing .env is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()
	store := storage.New(cfg)

	// 3. Domain services
	engine := radio.NewEngine(radio.NewClient(cfg), cfg.Directory.SearchLimit)
	ai := assistant.New(cfg)
	favs := favorites.NewStore(db)
	recs := recordings.NewCatalog(cfg, db, store)
	geom := geometry.New(cfg)

	// 4. Setup Metrics
	radio.RegisterMetrics()
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 5. Start Server
	srv := api.New(cfg, engine, ai, favs, recs, geom)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
