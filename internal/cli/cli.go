// Package cli implements the cumulus command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cumulus/pkg/buildinfo"
	"github.com/matzehuels/cumulus/pkg/cache"
	"github.com/matzehuels/cumulus/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cumulus"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the configuration
// from the user's config file (or defaults when no file exists).
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := LoadConfig()
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("config file ignored", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cumulus",
		Short:        "Cumulus arranges weighted items into tag clouds",
		Long:         `Cumulus is a spiral tag-cloud layout engine: it maps item weights to font sizes and places labels on an expanding spiral with collision avoidance, producing layout documents that any frontend can paint.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Carry the logger in the context so deeply nested helpers don't need
	// the CLI struct. main.go chains this with the verbose-flag handling.
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.itemsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner wired to the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
}

// newCache builds the configured cache backend. Unlike the server path, a
// backend failure degrades to no caching with a warning instead of aborting
// the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	switch c.Config.Cache.Backend {
	case cacheBackendNone:
		return cache.NewNullCache()
	case cacheBackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled",
				"addr", c.Config.Cache.Redis.Addr, "err", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: the configured override if set,
// otherwise the XDG standard (~/.cache/cumulus/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
