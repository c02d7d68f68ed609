package db

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/lucapp/config"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

func TestOpenStorage_Drivers(t *testing.T) {
	server := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{Storage: config.StorageConfig{Driver: config.StorageDriverMemory}}},
		{"sqlite", config.Config{Storage: config.StorageConfig{Driver: config.StorageDriverSQLite, DSN: ":memory:"}}},
		{"redis", config.Config{
			Storage: config.StorageConfig{Driver: config.StorageDriverRedis},
			Redis:   config.RedisConfig{URL: "redis://" + server.Addr() + "/0"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := OpenStorage(&tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() { _ = storage.Close() }()

			if !storage.HealthCheck() {
				t.Error("expected healthy storage")
			}

			ctx := context.Background()
			if err := storage.Store.Set(ctx, "lucapp_users", []byte("[]")); err != nil {
				t.Fatalf("unexpected error on set: %v", err)
			}
			got, err := storage.Store.Get(ctx, "lucapp_users")
			if err != nil || string(got) != "[]" {
				t.Errorf("expected stored value, got %q %v", got, err)
			}
		})
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(&config.Config{Storage: config.StorageConfig{Driver: "mongo"}})

	var storageErr *domainerror.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Code != domainerror.ErrCodeUnsupportedStorageDriver {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnsupportedStorageDriver, storageErr.Code)
	}
	if !errors.Is(err, domainerror.ErrUnsupportedStorageDriver) {
		t.Error("expected error to wrap ErrUnsupportedStorageDriver")
	}
}

func TestNewRedisConnection_InvalidURL(t *testing.T) {
	if _, err := NewRedisConnection(&config.RedisConfig{URL: "://nope"}); err == nil {
		t.Error("expected invalid url to fail")
	}
}
