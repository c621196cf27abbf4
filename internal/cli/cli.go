package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkroute/pkg/buildinfo"
	"github.com/matzehuels/linkroute/pkg/cache"
	"github.com/matzehuels/linkroute/pkg/router"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "linkroute"

	// redisPasswordEnv names the environment variable holding the Redis password.
	redisPasswordEnv = "LINKROUTE_REDIS_PASSWORD"
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
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
		Short:        "Linkroute draws connector paths between diagram shapes",
		Long:         `Linkroute computes the paths of links between positioned shapes: anchors, elbows, curves, self loops and fan-out, ready to be drawn by any renderer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Router Factory
// =============================================================================

// cacheFlags selects the cache backing a router.
type cacheFlags struct {
	noCache   bool
	redisAddr string
	redisDB   int
	memory    int // in-process entry cap; zero uses the file cache
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisAddr, "redis", "", "cache routes in Redis at this address (password from "+redisPasswordEnv+")")
	cmd.Flags().IntVar(&f.redisDB, "redis-db", 0, "Redis database number")
}

// newRouter creates a router for CLI use. The caller closes its cache.
func (c *CLI) newRouter(ctx context.Context, flags cacheFlags) (*router.Router, error) {
	ch, err := c.newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return router.New(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	switch {
	case flags.noCache:
		return cache.NewNullCache(), nil
	case flags.redisAddr != "":
		c.Logger.Debug("using redis cache", "addr", flags.redisAddr, "db", flags.redisDB)
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     flags.redisAddr,
			Password: os.Getenv(redisPasswordEnv),
			DB:       flags.redisDB,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case flags.memory > 0:
		c.Logger.Debug("using memory cache", "entries", flags.memory)
		return cache.NewMemoryCache(flags.memory), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/linkroute/).
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
