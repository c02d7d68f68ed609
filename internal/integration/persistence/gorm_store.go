// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/persistence/model"
)

// gormStore implements adapter.KeyValueStore on a single SQL table.
// It works with any GORM dialector; the application wires Postgres and SQLite.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new SQL-backed key-value store. The kv_entries
// table must exist; see model.KVEntryModel.
func NewGormStore(db *gorm.DB) adapter.KeyValueStore {
	return &gormStore{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (s *gormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntryModel
	result := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrKeyNotFound
		}
		return nil, result.Error
	}
	return entry.Value, nil
}

// Set inserts or replaces the value stored under key.
func (s *gormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntryModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry)
	return result.Error
}

// Delete removes key.
func (s *gormStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&model.KVEntryModel{})
	return result.Error
}
