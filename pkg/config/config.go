// ABOUTME: Configuration management for the pipeline with environment variable support
// ABOUTME: Built once at process start and passed by parameter; no component reads ambient env

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all pipeline configuration
type Config struct {
	// App contains site identity used to build item and feed URLs
	App AppConfig

	// Content contains the content tree location and public host
	Content ContentConfig

	// Store contains content store backend configuration
	Store StoreConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Feed contains aggregation tunables
	Feed FeedConfig

	// Importer contains provider fetch configuration
	Importer ImporterConfig
}

// AppConfig holds site identity
type AppConfig struct {
	// Name is the site display name
	Name string

	// Host is the web application base URL (trailing slash included)
	Host string
}

// ContentConfig holds the content tree location
type ContentConfig struct {
	// Path is the content tree root on disk
	Path string

	// Host is the public base URL the content tree is served from
	Host string
}

// StoreConfig holds content store backend configuration
type StoreConfig struct {
	// Type specifies the store backend (filesystem/sqlite)
	Type string

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/none)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// FeedConfig holds aggregation tunables
type FeedConfig struct {
	// PageSize is the number of items per feed page
	PageSize int

	// MinRollupItems is the minimum member item count for a collection to
	// appear in the global roll-up index
	MinRollupItems int
}

// ImporterConfig holds provider fetch configuration
type ImporterConfig struct {
	// FlickrEndpoint, DropboxEndpoint and INaturalistEndpoint are the
	// base URLs the provider adapters fetch payloads from
	FlickrEndpoint      string
	DropboxEndpoint     string
	INaturalistEndpoint string

	// TimeoutSeconds is the per-request HTTP timeout
	TimeoutSeconds int

	// MaxAttempts is the retry budget per request
	MaxAttempts int

	// RequestsPerSecond caps the provider request rate
	RequestsPerSecond float64
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name: getEnvOrDefault("APP_NAME", "NatureShare"),
			Host: getEnvOrDefault("APP_HOST", "https://natureshare.org.au/"),
		},
		Content: ContentConfig{
			Path: getEnvOrDefault("CONTENT_FILE_PATH", "./content"),
			Host: getEnvOrDefault("CONTENT_HOST", "https://files.natureshare.org.au/"),
		},
		Store: StoreConfig{
			Type:       getEnvOrDefault("STORE_TYPE", "filesystem"),
			SQLitePath: getEnvOrDefault("STORE_SQLITE_PATH", "content.db"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Feed: FeedConfig{
			PageSize:       getEnvAsIntOrDefault("FEED_PAGE_SIZE", 1000),
			MinRollupItems: getEnvAsIntOrDefault("FEED_MIN_ROLLUP_ITEMS", 10),
		},
		Importer: ImporterConfig{
			FlickrEndpoint:      getEnvOrDefault("FLICKR_ENDPOINT", ""),
			DropboxEndpoint:     getEnvOrDefault("DROPBOX_ENDPOINT", ""),
			INaturalistEndpoint: getEnvOrDefault("INATURALIST_ENDPOINT", "https://api.inaturalist.org"),
			TimeoutSeconds:      getEnvAsIntOrDefault("IMPORTER_TIMEOUT", 30),
			MaxAttempts:         getEnvAsIntOrDefault("IMPORTER_MAX_ATTEMPTS", 3),
			RequestsPerSecond:   getEnvAsFloatOrDefault("IMPORTER_RPS", 1),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.App.Host == "" {
		return errors.New("app host cannot be empty")
	}

	if c.Content.Host == "" {
		return errors.New("content host cannot be empty")
	}

	if c.Store.Type != "filesystem" && c.Store.Type != "sqlite" {
		return errors.New("store type must be 'filesystem' or 'sqlite'")
	}

	if c.Store.Type == "filesystem" && c.Content.Path == "" {
		return errors.New("content path cannot be empty when using filesystem store")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" && c.Cache.Type != "none" {
		return errors.New("cache type must be 'redis', 'memory' or 'none'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Feed.PageSize < 1 {
		return errors.New("feed page size must be at least 1")
	}

	return nil
}
