package folder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is a single key-value record in the blobs table. The folder
// collection occupies one row.
type Blob struct {
	Key       string          `gorm:"primarykey;size:255"`
	Value     json.RawMessage `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the Blob model.
func (Blob) TableName() string {
	return "blobs"
}

// DBStore is a BlobStore backed by the application database.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore returns a store over the given gorm handle.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Read implements BlobStore.
func (s *DBStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var blob Blob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob.Value, true, nil
}

// Write implements BlobStore. The row is upserted so the first write creates
// the record.
func (s *DBStore) Write(ctx context.Context, key string, data []byte) error {
	blob := Blob{Key: key, Value: data, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}
