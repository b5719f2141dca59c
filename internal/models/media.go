package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Siddique-web/EchoPlay/internal/folder"
)

// Music is a track in the shared catalog.
type Music struct {
	ID        string    `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Title     string    `json:"title" gorm:"not null"`
	Artist    string    `json:"artist"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Music model.
func (Music) TableName() string {
	return "music"
}

// BeforeCreate assigns an id when none was provided.
func (m *Music) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Snapshot copies the record's display fields into a folder item. The copy
// is taken at the moment of the add action and never updated afterwards.
func (m *Music) Snapshot(addedAt time.Time) folder.MusicItem {
	return folder.NewMusicItem(m.ID, m.Title, m.Artist, m.URL, m.Thumbnail, addedAt)
}

// Video is a video in the shared catalog.
type Video struct {
	ID          string    `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Video model.
func (Video) TableName() string {
	return "videos"
}

// BeforeCreate assigns an id when none was provided.
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Snapshot copies the record's display fields into a folder item.
func (v *Video) Snapshot(addedAt time.Time) folder.VideoItem {
	return folder.NewVideoItem(v.ID, v.Title, v.Description, v.URL, v.Thumbnail, addedAt)
}
