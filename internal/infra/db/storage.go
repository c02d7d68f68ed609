package db

import (
	"fmt"

	"github.com/finance-tracker/lucapp/config"
	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/persistence"
)

// Storage is the key-value store selected by configuration together with
// its lifecycle hooks.
type Storage struct {
	Driver      string
	Store       adapter.KeyValueStore
	HealthCheck func() bool
	close       func() error
}

// Close releases the underlying connection.
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage builds the key-value store named by cfg.Storage.Driver.
func OpenStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return &Storage{
			Driver:      cfg.Storage.Driver,
			Store:       persistence.NewMemoryStore(),
			HealthCheck: func() bool { return true },
		}, nil

	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		database, err := NewSQLConnection(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:      cfg.Storage.Driver,
			Store:       persistence.NewGormStore(database.DB()),
			HealthCheck: database.HealthCheck,
			close:       database.Close,
		}, nil

	case config.StorageDriverRedis:
		client, err := NewRedisConnection(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:      cfg.Storage.Driver,
			Store:       persistence.NewRedisStore(client),
			HealthCheck: redisHealthCheck(client),
			close:       client.Close,
		}, nil

	default:
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUnsupportedStorageDriver,
			fmt.Sprintf("unsupported storage driver %q", cfg.Storage.Driver),
			domainerror.ErrUnsupportedStorageDriver,
		)
	}
}
