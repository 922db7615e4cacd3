// Package core contains the business logic for the NatureShare pipeline.
// It is designed to be framework-agnostic and can be used independently
// of any CLI or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Item, Collection, Feed, etc.)
// - reconcile: Source reconciliation merging provider records into items
// - collection: Collection view resolution (allow-list filtering)
// - feed: Feed aggregation, sorting, pagination and geo layers
// - indexer: Index builder orchestration over the content tree
// - importer: Provider import runs (fetch, reconcile, persist)
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (store, cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "natureshare-pipeline/core/indexer"
//	    "natureshare-pipeline/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Store:      myStore,      // implements interfaces.ContentStore
//	    Logger:     myLogger,     // implements interfaces.Logger
//	    FeedWriter: myFeedWriter, // implements interfaces.FeedWriter
//	}
//
//	// Create service
//	indexService := indexer.NewService(deps, indexer.Options{
//	    AppHost:     "https://natureshare.org.au/",
//	    ContentHost: "https://files.natureshare.org.au/",
//	})
//
//	// Rebuild every derived index
//	err := indexService.IndexAll(ctx)
//
package core
