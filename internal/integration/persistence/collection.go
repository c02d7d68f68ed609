package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// loadCollection decodes the JSON array stored under key into out.
// A missing key leaves out untouched and reports no error.
func loadCollection(ctx context.Context, store adapter.KeyValueStore, key string, out any) error {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domainerror.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domainerror.NewStorageError(
			domainerror.ErrCodeCorruptRecord,
			fmt.Sprintf("failed to decode %s", key),
			fmt.Errorf("%w: %v", domainerror.ErrCorruptRecord, err),
		)
	}
	return nil
}

// saveCollection encodes value as JSON and stores it under key.
func saveCollection(ctx context.Context, store adapter.KeyValueStore, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
