package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkroute/internal/server"
)

// defaultMemoryEntries bounds the in-process cache of the server.
const defaultMemoryEntries = 50000

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		timeout    time.Duration
		maxBody    int64
		flags      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing API over HTTP",
		Long: `Serve the routing API over HTTP.

POST /v1/routes routes a scene; GET /healthz reports the build. The layout
config given with --config is the default that request configs are merged
over. Routes are cached in memory unless --memory is 0; use --redis to
share cached routes between several instances. Requests may name a cache
scope so that canvases never share scene entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath, flags, server.Options{
				Timeout: timeout,
				MaxBody: maxBody,
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "default layout config file (TOML)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request routing timeout")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "maximum request body in bytes")
	flags.register(cmd)
	cmd.Flags().IntVar(&flags.memory, "memory", defaultMemoryEntries, "cache up to this many entries in memory; 0 uses the file cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, configPath string, flags cacheFlags, opts server.Options) error {
	cfg, err := layoutConfig(configPath, "", "")
	if err != nil {
		return err
	}
	opts.Defaults = cfg

	r, err := c.newRouter(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize router: %w", err)
	}
	defer r.Cache.Close()

	printInfo("Serving link routes")
	printKeyValue("address", addr)
	printKeyValue("style", string(cfg.Style))
	printKeyValue("cache", cacheKind(flags))
	printNewline()

	return server.New(r, c.Logger, opts).ListenAndServe(ctx, addr)
}

func cacheKind(flags cacheFlags) string {
	switch {
	case flags.noCache:
		return "disabled"
	case flags.redisAddr != "":
		return "redis " + flags.redisAddr
	case flags.memory > 0:
		return fmt.Sprintf("memory (%d entries)", flags.memory)
	}
	if dir, err := cacheDir(); err == nil {
		return dir
	}
	return "disabled"
}
