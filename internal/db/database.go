package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"radio-orbit/internal/config"
	"radio-orbit/internal/models"
)

type Client struct {
	DB *gorm.DB
}

// New opens the local application store. This is a single-user flat
// store (favorites list, recordings catalog), so a file-backed sqlite
// database is the whole deployment story.
func New(cfg *config.Config) *Client {
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("❌ Failed to open local store: %v", err)
	}

	log.Println("✅ Local store opened")

	return &Client{DB: db}
}

// AutoMigrate creates/updates tables based on struct definitions
func (c *Client) AutoMigrate() {
	log.Println("Running store migrations...")
	err := c.DB.AutoMigrate(
		&models.KVEntry{},
		&models.Recording{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
