// ABOUTME: Main entry point for the NatureShare pipeline CLI
// ABOUTME: Wires configuration, store, cache and services behind import/index/validate commands

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/importer"
	"natureshare-pipeline/core/importer/providers"
	"natureshare-pipeline/core/indexer"
	"natureshare-pipeline/core/interfaces"
	memorycache "natureshare-pipeline/infrastructure/cache/memory"
	rediscache "natureshare-pipeline/infrastructure/cache/redis"
	"natureshare-pipeline/infrastructure/feedwriter"
	stdhttp "natureshare-pipeline/infrastructure/http/standard"
	logruslogger "natureshare-pipeline/infrastructure/logger/logrus"
	fsstore "natureshare-pipeline/infrastructure/store/filesystem"
	sqlitestore "natureshare-pipeline/infrastructure/store/sqlite"
	"natureshare-pipeline/infrastructure/validator/jsonschema"
	"natureshare-pipeline/pkg/config"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitDataError    = 3
)

func main() {
	app := &cli.App{
		Name:    "pipeline",
		Usage:   "NatureShare content pipeline: import observations, build indexes",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import observations from a provider into a user's item tree",
				ArgsUsage: "<flickr|dropbox|inaturalist>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Content username to import into",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "abort-on-invalid",
						Usage: "Abort the run on the first invalid record instead of skipping",
					},
				},
				Action: runImport,
			},
			{
				Name:      "index",
				Usage:     "Rebuild derived feed indexes",
				ArgsUsage: "<items|collections|users|all>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "user",
						Aliases: []string{"u"},
						Usage:   "Limit items/collections indexing to one user",
					},
				},
				Action: runIndex,
			},
			{
				Name:   "validate",
				Usage:  "Validate all profiles, collections and items against their schemas",
				Action: runValidate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// pipeline bundles the wired services for one command invocation.
type pipeline struct {
	cfg     *config.Config
	deps    interfaces.Dependencies
	indexer *indexer.Service
}

// setup loads configuration and wires the dependency container.
func setup(c *cli.Context) (*pipeline, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logruslogger.NewLogger(c.String("log-level"))

	var store interfaces.ContentStore
	switch cfg.Store.Type {
	case "sqlite":
		sqlStore, err := sqlitestore.NewStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		store = sqlStore
	default:
		fileStore, err := fsstore.NewStore(cfg.Content.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open content tree: %w", err)
		}
		store = fileStore
	}

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := rediscache.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("failed to connect to redis, falling back to memory cache", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memorycache.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = redisCache
		}
	case "none":
		cache = nil
	default:
		cache = memorycache.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
	}

	validator, err := jsonschema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}

	httpClient := stdhttp.NewClient(stdhttp.Options{
		Timeout:           time.Duration(cfg.Importer.TimeoutSeconds) * time.Second,
		MaxAttempts:       cfg.Importer.MaxAttempts,
		RequestsPerSecond: cfg.Importer.RequestsPerSecond,
	})

	deps := interfaces.Dependencies{
		Store:      store,
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
		Validator:  validator,
		FeedWriter: feedwriter.NewWriter(store),
	}

	return &pipeline{
		cfg:  cfg,
		deps: deps,
		indexer: indexer.NewService(deps, indexer.Options{
			AppName:        cfg.App.Name,
			AppHost:        cfg.App.Host,
			ContentHost:    cfg.Content.Host,
			PageSize:       cfg.Feed.PageSize,
			MinRollupItems: cfg.Feed.MinRollupItems,
		}),
	}, nil
}

func runImport(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("import requires a provider argument", ExitGeneralError)
	}

	p, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitGeneralError)
	}

	var provider interfaces.Provider
	switch c.Args().First() {
	case "flickr":
		provider = providers.NewFlickr(p.deps, p.cfg.Importer.FlickrEndpoint)
	case "dropbox":
		provider = providers.NewDropbox(p.deps, p.cfg.Importer.DropboxEndpoint, p.cfg.Content.Host)
	case "inaturalist":
		provider = providers.NewINaturalist(p.deps, p.cfg.Importer.INaturalistEndpoint)
	default:
		return cli.Exit(fmt.Sprintf("unknown provider: %s", c.Args().First()), ExitGeneralError)
	}

	service := importer.NewService(p.deps)
	if c.Bool("abort-on-invalid") {
		service = service.WithPolicy(errors.AbortRun)
	}

	stats, err := service.Run(c.Context, provider, c.String("user"))
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}

	fmt.Printf("imported %d, skipped %d, invalid %d\n", stats.Imported, stats.Skipped, stats.Invalid)
	return nil
}

func runIndex(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("index requires a target argument", ExitGeneralError)
	}

	p, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitGeneralError)
	}
	ctx := c.Context

	users := func() ([]string, error) {
		if user := c.String("user"); user != "" {
			return []string{user}, nil
		}
		return p.indexer.Users(ctx)
	}

	switch c.Args().First() {
	case "items":
		names, err := users()
		if err != nil {
			return cli.Exit(err.Error(), ExitGeneralError)
		}
		for _, user := range names {
			if err := p.indexer.IndexUserItems(ctx, user); err != nil {
				return cli.Exit(err.Error(), ExitDataError)
			}
		}
	case "collections":
		names, err := users()
		if err != nil {
			return cli.Exit(err.Error(), ExitGeneralError)
		}
		for _, user := range names {
			if err := p.indexer.IndexUserCollections(ctx, user); err != nil {
				return cli.Exit(err.Error(), ExitDataError)
			}
		}
		if c.String("user") == "" {
			if err := p.indexer.IndexGlobalCollections(ctx); err != nil {
				return cli.Exit(err.Error(), ExitDataError)
			}
		}
	case "users":
		if err := p.indexer.IndexUsers(ctx); err != nil {
			return cli.Exit(err.Error(), ExitDataError)
		}
	case "all":
		if err := p.indexer.IndexAll(ctx); err != nil {
			return cli.Exit(err.Error(), ExitDataError)
		}
	default:
		return cli.Exit(fmt.Sprintf("unknown index target: %s", c.Args().First()), ExitGeneralError)
	}
	return nil
}

// runValidate checks every hand-editable document in the content tree
// against its schema and reports all failures before exiting non-zero.
func runValidate(c *cli.Context) error {
	p, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitGeneralError)
	}
	ctx := c.Context

	targets := []struct {
		pattern string
		schema  string
	}{
		{"*/profile.yaml", interfaces.SchemaProfile},
		{"*/collections/*.yaml", interfaces.SchemaCollection},
		{"*/items/*/*/*.yaml", interfaces.SchemaItem},
	}

	failed := 0
	for _, target := range targets {
		paths, err := p.deps.Store.List(ctx, target.pattern)
		if err != nil {
			return cli.Exit(err.Error(), ExitGeneralError)
		}
		for _, path := range paths {
			data, err := p.deps.Store.Get(ctx, path)
			if err != nil {
				fmt.Printf("--> %s\n    %v\n", path, err)
				failed++
				continue
			}
			var doc map[string]interface{}
			if err := yaml.Unmarshal(data, &doc); err != nil {
				fmt.Printf("--> %s\n    %v\n", path, err)
				failed++
				continue
			}
			if err := p.deps.Validator.Validate(doc, target.schema); err != nil {
				fmt.Printf("--> %s\n    %v\n", path, err)
				failed++
			}
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d documents failed validation", failed), ExitDataError)
	}
	fmt.Println("all documents valid")
	return nil
}
