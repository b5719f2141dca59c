package folder

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CollectionKey is the well-known blob key the collection is stored under.
// It matches the key the mobile client used, so a migrated device blob reads
// back unchanged.
const CollectionKey = "userFolders"

// Repository is the sole mutation path for the folder collection. Every
// operation is a full read-modify-write cycle against the blob store:
// load the whole collection, apply the change in memory, write the whole
// collection back.
//
// The mutex makes the repository an in-process serialization point, so
// overlapping operations from independent surfaces are applied one at a
// time against the latest state instead of clobbering each other's writes.
// Writers that bypass the repository and hit the store directly still race.
type Repository struct {
	store BlobStore
	key   string

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides the blob key the collection is stored under.
func WithKey(key string) Option {
	return func(r *Repository) { r.key = key }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides folder id generation.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// NewRepository returns a repository over the given store.
func NewRepository(store BlobStore, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		key:   CollectionKey,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// load reads the full collection. An absent record is an empty collection,
// not an error.
func (r *Repository) load(ctx context.Context) (Collection, error) {
	data, ok, err := r.store.Read(ctx, r.key)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if !ok {
		return Collection{}, nil
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return c, nil
}

// save serializes the entire collection and writes it in one call, so the
// store never holds a partially updated record.
func (r *Repository) save(ctx context.Context, c Collection) error {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := r.store.Write(ctx, r.key, data); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// ListAll returns every folder in insertion order. Empty collection when
// nothing has been stored yet.
func (r *Repository) ListAll(ctx context.Context) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// ListByType returns the folders matching the given media type, in order.
// Playback surfaces use it to offer only compatible folders.
func (r *Repository) ListByType(ctx context.Context, t MediaType) (Collection, error) {
	if !t.Valid() {
		return nil, validationf("unknown media type %q", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.ByType(t), nil
}

// Find returns the folder with the given id.
func (r *Repository) Find(ctx context.Context, folderID string) (Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.load(ctx)
	if err != nil {
		return Folder{}, err
	}
	idx := c.FindIndex(folderID)
	if idx < 0 {
		return Folder{}, ErrFolderNotFound
	}
	return c[idx], nil
}

// Create appends a new empty folder to the collection and persists it.
// Names are trimmed and must be non-empty; duplicate names are allowed.
func (r *Repository) Create(ctx context.Context, name string, t MediaType) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, validationf("folder name must not be empty")
	}
	if !t.Valid() {
		return Folder{}, validationf("unknown media type %q", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return Folder{}, err
	}
	f := Folder{
		ID:        r.newID(),
		Name:      name,
		Type:      t,
		Items:     []MediaItem{},
		CreatedAt: r.now(),
	}
	c = append(c, f)
	if err := r.save(ctx, c); err != nil {
		return Folder{}, err
	}
	return f, nil
}

// Delete removes the folder and all its items from the collection. Deleting
// a folder that no longer exists is a no-op, not an error.
func (r *Repository) Delete(ctx context.Context, folderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := make(Collection, 0, len(c))
	for _, f := range c {
		if f.ID != folderID {
			kept = append(kept, f)
		}
	}
	return r.save(ctx, kept)
}

// AddItem appends a snapshot to the folder's items. The folder is left
// unchanged on any failure: ErrFolderNotFound when the folder is gone,
// ErrDuplicateItem when an item with the same id is already present, and a
// ValidationError when the item's type does not match the folder's.
func (r *Repository) AddItem(ctx context.Context, folderID string, item MediaItem) error {
	if item == nil {
		return validationf("item must not be nil")
	}
	if item.Base().ID == "" {
		return validationf("item id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	idx := c.FindIndex(folderID)
	if idx < 0 {
		return ErrFolderNotFound
	}
	f := &c[idx]
	if item.Type() != f.Type {
		return validationf("cannot add a %s item to a %s folder", item.Type(), f.Type)
	}
	if f.ContainsItem(item.Base().ID) {
		return ErrDuplicateItem
	}
	f.Items = append(f.Items, item)
	return r.save(ctx, c)
}

// RemoveItem filters the item out of the folder. Removing an item that is
// not present is a no-op, so the operation is idempotent.
func (r *Repository) RemoveItem(ctx context.Context, folderID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	idx := c.FindIndex(folderID)
	if idx < 0 {
		return ErrFolderNotFound
	}
	f := &c[idx]
	kept := make([]MediaItem, 0, len(f.Items))
	for _, item := range f.Items {
		if item.Base().ID != itemID {
			kept = append(kept, item)
		}
	}
	f.Items = kept
	return r.save(ctx, c)
}
