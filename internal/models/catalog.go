package models

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Siddique-web/EchoPlay/internal/folder"
)

// Catalog resolves catalog records into folder item snapshots. The copy is
// taken from the live record at the moment of the add action; the folder
// item never sees later catalog edits.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog returns a catalog over the given gorm handle.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// MusicItem loads a track and copies it into a folder item.
func (c *Catalog) MusicItem(ctx context.Context, id string, addedAt time.Time) (folder.MusicItem, error) {
	var music Music
	if err := c.db.WithContext(ctx).First(&music, "id = ?", id).Error; err != nil {
		return folder.MusicItem{}, err
	}
	return music.Snapshot(addedAt), nil
}

// VideoItem loads a video and copies it into a folder item.
func (c *Catalog) VideoItem(ctx context.Context, id string, addedAt time.Time) (folder.VideoItem, error) {
	var video Video
	if err := c.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return folder.VideoItem{}, err
	}
	return video.Snapshot(addedAt), nil
}
