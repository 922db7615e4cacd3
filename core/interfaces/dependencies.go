// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for collaborators required by the pipeline core

package interfaces

// Dependencies holds all external collaborators required by the core
// pipeline logic. The core algorithms themselves are pure; every suspension
// point (file I/O, network fetch, validation) goes through this container.
type Dependencies struct {
	// Store is the content tree (filesystem-as-database) abstraction
	Store ContentStore

	// Cache provides caching of loaded index pages
	Cache Cache

	// HTTPClient provides HTTP request functionality for provider fetches
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Validator provides schema validation for items and generated feeds
	Validator SchemaValidator

	// FeedWriter is the sink for generated feed pages and geo layers
	FeedWriter FeedWriter
}
