package models

import (
	"time"

	"gorm.io/gorm"
)

// Recording is one captured audio clip in the catalog. The blob itself
// lives in storage under Key; this row is the listing metadata.
type Recording struct {
	gorm.Model

	ClipID      string `gorm:"uniqueIndex;not null" json:"id"`
	StationName string `gorm:"index" json:"stationName"`
	Key         string `json:"-"` // storage key (recordings/<clipid>.mp3)
	ContentType string `json:"-"`

	RecordedAt time.Time `json:"timestamp"`
	Duration   string    `json:"duration"` // "mm:ss", as reported by the client
	Size       string    `json:"size"`     // human-readable, e.g. "1.2 MB"
}

// KVEntry backs the flat key-value store (favorites list). One row per
// application key, value rewritten in full on every save.
type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
