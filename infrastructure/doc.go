// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as storage, caching, HTTP communication, validation and logging.
//
// The infrastructure package is organized by technical concern:
//
// - store/filesystem: Content tree on disk (the production store)
// - store/memory: In-memory content store for tests and dry runs
// - store/sqlite: SQLite-backed content store
// - cache/memory: In-memory cache with TTL support
// - cache/redis: Redis-based cache implementation
// - http/standard: Standard library HTTP client with retries and rate limiting
// - logger/logrus: Structured logger implementation
// - validator/jsonschema: JSON Schema validation with embedded schemas
// - feedwriter: JSON/RSS/Atom/GeoJSON feed page sink
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include retries, timeouts, and error handling
//
// # Store Implementations
//
// Filesystem Store Example:
//
//	store, err := filesystem.NewStore("./content")
//	data, err := store.Get(ctx, "alice/items/flickr/2021/51001.yaml")
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures and
// an optional request rate cap for provider APIs:
//
//	client := standard.NewClient(standard.Options{
//	    Timeout:           30 * time.Second,
//	    MaxAttempts:       3,
//	    RequestsPerSecond: 1,
//	})
//	resp, err := client.Get(ctx, "https://api.inaturalist.org/v1/observations")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.NewLogger("info")
//	logger.Info("import finished", map[string]interface{}{
//	    "provider": "flickr",
//	    "user":     "alice",
//	})
//
package infrastructure
