package recordings

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"github.com/google/uuid"

	"radio-orbit/internal/config"
	database "radio-orbit/internal/db"
	"radio-orbit/internal/models"
	"radio-orbit/internal/storage"
)

// Catalog manages captured audio clips: the blobs live in storage, the
// listing metadata in the local store.
type Catalog struct {
	db      *database.Client
	storage *storage.Client
	tempDir string
}

func NewCatalog(cfg *config.Config, db *database.Client, store *storage.Client) *Catalog {
	return &Catalog{db: db, storage: store, tempDir: cfg.Server.TempDir}
}

// SaveClip ingests one captured clip: spool to a temp file, stamp MP3
// clips with ID3 metadata, upload the blob, then record the catalog row.
func (c *Catalog) SaveClip(stationName, duration, contentType string, body io.Reader) (*models.Recording, error) {
	clipID := uuid.NewString()
	ext := extensionFor(contentType)
	key := "clips/" + clipID + ext
	now := time.Now()

	tmp := filepath.Join(c.tempDir, clipID+ext)
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("spool clip: %w", err)
	}
	size, err := io.Copy(f, body)
	f.Close()
	if err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("spool clip: %w", err)
	}
	defer os.Remove(tmp)

	if stationName == "" {
		stationName = probeStationName(tmp)
	}
	if ext == ".mp3" {
		stampID3(tmp, stationName, now)
	}

	blob, err := os.Open(tmp)
	if err != nil {
		return nil, fmt.Errorf("reopen clip: %w", err)
	}
	defer blob.Close()

	if err := c.storage.SaveClip(key, blob, contentType); err != nil {
		return nil, fmt.Errorf("store clip: %w", err)
	}

	rec := models.Recording{
		ClipID:      clipID,
		StationName: stationName,
		Key:         key,
		ContentType: contentType,
		RecordedAt:  now,
		Duration:    duration,
		Size:        humanSize(size),
	}
	if err := c.db.DB.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("catalog clip: %w", err)
	}

	log.Printf("🎙️ Recorded clip %s (%s, %s)", clipID, stationName, rec.Size)
	return &rec, nil
}

// List returns the catalog newest-first.
func (c *Catalog) List() ([]models.Recording, error) {
	var recs []models.Recording
	if err := c.db.DB.Order("recorded_at desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	return recs, nil
}

// Open serves one clip's blob for playback or download.
func (c *Catalog) Open(clipID string) (*models.Recording, *storage.FileObject, error) {
	var rec models.Recording
	if err := c.db.DB.First(&rec, "clip_id = ?", clipID).Error; err != nil {
		return nil, nil, fmt.Errorf("recording %s: %w", clipID, err)
	}
	obj, err := c.storage.OpenClip(rec.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("open clip %s: %w", clipID, err)
	}
	return &rec, obj, nil
}

// Delete removes the blob and the catalog row.
func (c *Catalog) Delete(clipID string) error {
	var rec models.Recording
	if err := c.db.DB.First(&rec, "clip_id = ?", clipID).Error; err != nil {
		return fmt.Errorf("recording %s: %w", clipID, err)
	}
	if err := c.storage.DeleteClip(rec.Key); err != nil {
		return fmt.Errorf("delete blob %s: %w", rec.Key, err)
	}
	return c.db.DB.Delete(&rec).Error
}

// probeStationName reads embedded tags off the spooled clip so a clip
// uploaded without a station name still gets a usable label.
func probeStationName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "Unknown Station"
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "Unknown Station"
	}
	if m.Artist() != "" {
		return m.Artist()
	}
	if m.Title() != "" {
		return m.Title()
	}
	return "Unknown Station"
}

// stampID3 writes station metadata into an MP3 clip before upload.
// Tagging failures leave the clip untagged but stored.
func stampID3(path, stationName string, recordedAt time.Time) {
	mp3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		log.Printf("⚠️ Could not tag clip %s: %v", filepath.Base(path), err)
		return
	}
	defer mp3.Close()

	mp3.SetArtist(stationName)
	mp3.SetTitle("Radio Orbit recording " + recordedAt.Format("2006-01-02 15:04"))
	if err := mp3.Save(); err != nil {
		log.Printf("⚠️ Could not save clip tags %s: %v", filepath.Base(path), err)
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/aac":
		return ".aac"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".webm" // browser MediaRecorder default
	}
}

func humanSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
