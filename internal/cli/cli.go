// Package cli implements the pagebinder command-line interface.
//
// This package provides commands for assembling images into PDFs, for the
// PDF, image, and archive utilities, and for managing the download cache.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - assemble: Bind a sequence of images into a multi-page PDF
//   - pdf: Download, merge, split, rasterize, and inspect PDFs
//   - image: Resize, convert, and recompress images
//   - archive: Create and extract archives
//   - commands: A reference catalog of common shell commands
//   - cache: Manage the download cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/buildinfo"
	"github.com/pagebinder/pagebinder/pkg/cache"
	"github.com/pagebinder/pagebinder/pkg/httputil"
)

// appName is the application name used for directories and display.
const appName = "pagebinder"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	config Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Pagebinder binds images into PDFs and bundles common file utilities",
		Long:         `Pagebinder is a CLI tool for assembling image sequences into multi-page PDF documents, with companion commands for PDF manipulation, image processing, and archives.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			c.SetLogLevel(level)

			cfg, err := LoadConfig()
			if err != nil {
				c.Logger.Warn("Ignoring unreadable config", "err", err)
			} else {
				c.config = cfg
			}

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.assembleCommand())
	root.AddCommand(c.pdfCommand())
	root.AddCommand(c.imageCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.commandsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newHTTPClient builds the download client from the loaded config.
func (c *CLI) newHTTPClient(ctx context.Context, noCache bool) *httputil.Client {
	opts := []httputil.Option{
		httputil.WithTimeout(time.Duration(c.config.Download.TimeoutSeconds) * time.Second),
	}
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("Cache unavailable, downloads will not be cached", "err", err)
		store = cache.NewNullCache()
	}
	ttl := time.Duration(c.config.Download.CacheTTLHours) * time.Hour
	opts = append(opts, httputil.WithCache(store, ttl))
	return httputil.NewClient(opts...)
}

// newCache builds the cache backend selected by config.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.config.Cache.Backend {
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, c.config.Cache.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pagebinder/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
