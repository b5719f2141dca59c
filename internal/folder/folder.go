// Package folder implements the user playlist subsystem: named, type-tagged
// containers of media item snapshots, persisted as a single JSON blob in a
// key-value store and mutated through a serialized repository.
package folder

import (
	"encoding/json"
	"fmt"
	"time"
)

// MediaType tags a folder with the kind of items it accepts. Fixed at
// creation time.
type MediaType string

const (
	Music MediaType = "music"
	Video MediaType = "video"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	return t == Music || t == Video
}

// PlaceholderTitle is used when the source catalog record carried no title.
const PlaceholderTitle = "Untitled"

// ItemBase holds the fields shared by both item variants.
type ItemBase struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// MediaItem is a point-in-time copy of a catalog record's display fields,
// stored inside a folder. Later changes to the catalog do not propagate into
// the stored item. Implemented by MusicItem and VideoItem only.
type MediaItem interface {
	Base() ItemBase
	Type() MediaType
}

// MusicItem is a snapshot of a music catalog record.
type MusicItem struct {
	ItemBase
	Artist    string `json:"artist,omitempty"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Base returns the shared item fields.
func (m MusicItem) Base() ItemBase { return m.ItemBase }

// Type returns Music.
func (m MusicItem) Type() MediaType { return Music }

// VideoItem is a snapshot of a video catalog record.
type VideoItem struct {
	ItemBase
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// Base returns the shared item fields.
func (v VideoItem) Base() ItemBase { return v.ItemBase }

// Type returns Video.
func (v VideoItem) Type() MediaType { return Video }

// NewMusicItem builds a music snapshot. An empty title is replaced with the
// placeholder so stored items always display something.
func NewMusicItem(id, title, artist, url, thumbnail string, addedAt time.Time) MusicItem {
	return MusicItem{
		ItemBase:  newBase(id, title, addedAt),
		Artist:    artist,
		URL:       url,
		Thumbnail: thumbnail,
	}
}

// NewVideoItem builds a video snapshot, defaulting an empty title the same
// way NewMusicItem does.
func NewVideoItem(id, title, description, url, thumbnail string, addedAt time.Time) VideoItem {
	return VideoItem{
		ItemBase:    newBase(id, title, addedAt),
		Description: description,
		URL:         url,
		Thumbnail:   thumbnail,
	}
}

func newBase(id, title string, addedAt time.Time) ItemBase {
	if title == "" {
		title = PlaceholderTitle
	}
	base := ItemBase{ID: id, Title: title}
	if !addedAt.IsZero() {
		base.CreatedAt = &addedAt
	}
	return base
}

// Folder is a named container of media item snapshots. Name need not be
// unique; ID is. Type never changes after creation and every item in Items
// matches it.
type Folder struct {
	ID        string
	Name      string
	Type      MediaType
	Items     []MediaItem
	CreatedAt time.Time
}

// ContainsItem reports whether the folder already holds an item with the
// given id.
func (f *Folder) ContainsItem(itemID string) bool {
	for _, item := range f.Items {
		if item.Base().ID == itemID {
			return true
		}
	}
	return false
}

// folderJSON is the persisted wire shape: the same flat structure the mobile
// client wrote to device storage.
type folderJSON struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      MediaType         `json:"type"`
	Items     []json.RawMessage `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
}

// MarshalJSON implements json.Marshaler.
func (f Folder) MarshalJSON() ([]byte, error) {
	out := folderJSON{
		ID:        f.ID,
		Name:      f.Name,
		Type:      f.Type,
		Items:     make([]json.RawMessage, 0, len(f.Items)),
		CreatedAt: f.CreatedAt,
	}
	for _, item := range f.Items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The folder's own type selects
// the concrete item variant each element decodes into.
func (f *Folder) UnmarshalJSON(data []byte) error {
	var raw folderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make([]MediaItem, 0, len(raw.Items))
	for _, rawItem := range raw.Items {
		switch raw.Type {
		case Video:
			var item VideoItem
			if err := json.Unmarshal(rawItem, &item); err != nil {
				return err
			}
			items = append(items, item)
		case Music:
			var item MusicItem
			if err := json.Unmarshal(rawItem, &item); err != nil {
				return err
			}
			items = append(items, item)
		default:
			return fmt.Errorf("unknown folder type %q", raw.Type)
		}
	}
	f.ID = raw.ID
	f.Name = raw.Name
	f.Type = raw.Type
	f.Items = items
	f.CreatedAt = raw.CreatedAt
	return nil
}

// Collection is the full persisted set of folders, stored as one blob in
// insertion order.
type Collection []Folder

// FindIndex returns the position of the folder with the given id, or -1.
func (c Collection) FindIndex(folderID string) int {
	for i := range c {
		if c[i].ID == folderID {
			return i
		}
	}
	return -1
}

// ByType returns the subsequence of folders with the given media type,
// preserving order.
func (c Collection) ByType(t MediaType) Collection {
	filtered := Collection{}
	for _, f := range c {
		if f.Type == t {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
