package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/persistence/model"
)

func newSQLiteStore(t *testing.T) adapter.KeyValueStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.KVEntryModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewGormStore(db)
}

func newRedisStore(t *testing.T) adapter.KeyValueStore {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func storeFactories() map[string]func(t *testing.T) adapter.KeyValueStore {
	return map[string]func(t *testing.T) adapter.KeyValueStore{
		"memory": func(*testing.T) adapter.KeyValueStore { return NewMemoryStore() },
		"sqlite": newSQLiteStore,
		"redis":  newRedisStore,
	}
}

func TestKeyValueStore_Contract(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, domainerror.ErrKeyNotFound) {
				t.Fatalf("expected ErrKeyNotFound, got %v", err)
			}

			if err := store.Set(ctx, "k", []byte("first")); err != nil {
				t.Fatalf("unexpected error on set: %v", err)
			}
			if err := store.Set(ctx, "k", []byte("second")); err != nil {
				t.Fatalf("unexpected error on overwrite: %v", err)
			}

			got, err := store.Get(ctx, "k")
			if err != nil {
				t.Fatalf("unexpected error on get: %v", err)
			}
			if string(got) != "second" {
				t.Errorf("expected overwritten value, got %q", got)
			}

			if err := store.Delete(ctx, "k"); err != nil {
				t.Fatalf("unexpected error on delete: %v", err)
			}
			if _, err := store.Get(ctx, "k"); !errors.Is(err, domainerror.ErrKeyNotFound) {
				t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
			}
			if err := store.Delete(ctx, "k"); err != nil {
				t.Errorf("expected deleting a missing key to succeed, got %v", err)
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	_ = store.Set(ctx, "k", value)
	value[0] = 'x'

	got, _ := store.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("expected stored value to be isolated from caller, got %q", got)
	}

	got[1] = 'y'
	again, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("expected returned value to be a copy, got %q", again)
	}
}
