package favorites

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "radio-orbit/internal/db"
	"radio-orbit/internal/models"
)

// AppKey is the single fixed key the favorites list lives under. The
// value is the whole list serialized as JSON; every save rewrites it in
// full, matching the flat key-value contract the clients expect.
const AppKey = "radio-orbit-favorites"

type Store struct {
	db *database.Client
}

func NewStore(db *database.Client) *Store {
	return &Store{db: db}
}

// Load reads the persisted favorites list. A missing key is an empty
// list, not an error.
func (s *Store) Load() ([]models.Station, error) {
	var entry models.KVEntry
	err := s.db.DB.First(&entry, "key = ?", AppKey).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	var stations []models.Station
	if err := json.Unmarshal(entry.Value, &stations); err != nil {
		return nil, fmt.Errorf("favorites payload corrupt: %w", err)
	}
	return stations, nil
}

// Save rewrites the full favorites list under the application key.
func (s *Store) Save(stations []models.Station) error {
	if stations == nil {
		stations = []models.Station{}
	}
	payload, err := json.Marshal(stations)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}

	entry := models.KVEntry{Key: AppKey, Value: payload, UpdatedAt: time.Now()}
	err = s.db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

// Toggle adds the station to the list, or removes it when an entry with
// the same identifier is already present, then persists the result.
func (s *Store) Toggle(station models.Station) ([]models.Station, error) {
	current, err := s.Load()
	if err != nil {
		return nil, err
	}

	next := make([]models.Station, 0, len(current)+1)
	removed := false
	for _, fav := range current {
		if fav.StationUUID == station.StationUUID {
			removed = true
			continue
		}
		next = append(next, fav)
	}
	if !removed {
		next = append(next, station)
	}

	if err := s.Save(next); err != nil {
		return nil, err
	}
	return next, nil
}
