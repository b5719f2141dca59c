package folder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists blobs as JSON files in a directory, one file per key.
// Writes go through a temp file and rename so a crash never leaves a
// half-written record.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read implements BlobStore. A missing file means no record yet.
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read blob: %w", err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

// Write implements BlobStore.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
