// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Storage drivers supported by the key-value store factory.
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Locale     LocaleConfig
	Statistics StatisticsConfig
	RateLimit  RateLimitConfig
	Worker     WorkerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// StorageConfig holds key-value storage configuration.
type StorageConfig struct {
	Driver          string
	DSN             string
	KeyPrefix       string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// JWTConfig holds JWT token configuration.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// LocaleConfig holds formatting preferences used for human-readable labels.
type LocaleConfig struct {
	Timezone string
	Currency string
	Language string
}

// StatisticsConfig holds defaults for statistics queries.
type StatisticsConfig struct {
	TrendWindow      int
	TopCategoryLimit int
}

// RateLimitConfig holds login rate limiting configuration.
// A non-positive LoginAttempts disables the limiter.
type RateLimitConfig struct {
	LoginAttempts int
	Window        time.Duration
}

// WorkerConfig holds configuration for the scheduled legacy migration sweep.
type WorkerConfig struct {
	Enabled  bool
	Schedule string
	Timeout  time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "127.0.0.1"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", StorageDriverSQLite),
			DSN:             getEnv("STORAGE_DSN", "lucapp.db"),
			KeyPrefix:       getEnv("STORAGE_KEY_PREFIX", "lucapp"),
			MaxOpenConns:    getEnvAsInt("STORAGE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("STORAGE_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("STORAGE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "change-me-in-production"),
			AccessTokenExpiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Locale: LocaleConfig{
			Timezone: getEnv("LOCALE_TIMEZONE", "America/Santiago"),
			Currency: getEnv("LOCALE_CURRENCY", "CLP"),
			Language: getEnv("LOCALE_LANGUAGE", "es"),
		},
		Statistics: StatisticsConfig{
			TrendWindow:      getEnvAsInt("STATISTICS_TREND_WINDOW", 6),
			TopCategoryLimit: getEnvAsInt("STATISTICS_TOP_LIMIT", 5),
		},
		RateLimit: RateLimitConfig{
			LoginAttempts: getEnvAsInt("RATE_LIMIT_LOGIN_ATTEMPTS", 5),
			Window:        getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Worker: WorkerConfig{
			Enabled:  getEnvAsBool("MIGRATION_WORKER_ENABLED", true),
			Schedule: getEnv("MIGRATION_WORKER_SCHEDULE", "0 3 * * *"),
			Timeout:  getEnvAsDuration("MIGRATION_WORKER_TIMEOUT", 5*time.Minute),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC when it is unknown.
func (c LocaleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
