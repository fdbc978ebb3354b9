package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cumulus/internal/server"
	"github.com/matzehuels/cumulus/pkg/cache"
	"github.com/matzehuels/cumulus/pkg/observability"
	"github.com/matzehuels/cumulus/pkg/pipeline"
	"github.com/matzehuels/cumulus/pkg/store"
)

// shutdownTimeout bounds graceful HTTP shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command exposing the layout engine over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := c.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine as an HTTP API",
		Long: `Serve the layout engine as an HTTP API.

Endpoints:
  POST /api/v1/layout    compute a layout for an inline item set
  POST /api/v1/clouds    compute and save a named cloud
  GET  /api/v1/clouds    list saved clouds
  GET  /healthz          liveness probe
  GET  /metrics          prometheus metrics

The store backend (memory or mongo) and cache backend (file, redis, none)
come from the config file; flags override.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.Store.Backend, "store", cfg.Store.Backend, "store backend: memory, mongo")
	cmd.Flags().StringVar(&cfg.Store.Mongo.URI, "mongo-uri", cfg.Store.Mongo.URI, "mongodb connection string")
	cmd.Flags().StringVar(&cfg.Cache.Backend, "cache", cfg.Cache.Backend, "cache backend: file, redis, none")
	cmd.Flags().StringVar(&cfg.Cache.Redis.Addr, "redis-addr", cfg.Cache.Redis.Addr, "redis address for the cache")

	return cmd
}

// runServe wires store, cache, metrics, and the router, then serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg Config) error {
	registry := prometheus.NewRegistry()
	hooks := observability.NewPrometheusHooks(registry)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Error("close store", "err", err)
		}
	}()

	ch, err := c.newServeCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(st, runner, c.Logger, registry)
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving HTTP API",
			"addr", cfg.Server.Addr,
			"store", cfg.Store.Backend,
			"cache", cfg.Cache.Backend)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newStore builds the configured store backend.
func (c *CLI) newStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case storeBackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.Mongo.URI,
			Database: cfg.Store.Mongo.Database,
		})
	case storeBackendMemory, "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newServeCache builds the configured cache backend for the server. Unlike
// the CLI path, failures here are fatal rather than silently degraded.
func (c *CLI) newServeCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case cacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendFile, "":
		dir, err := c.cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
