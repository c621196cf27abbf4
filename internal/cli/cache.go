package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkroute/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the route cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags cacheFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := c.newCache(ctx, flags)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			cl, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Nothing to clear")
				return nil
			}
			if err := cl.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared cached routes")
			printDetail("Cache: %s", cacheKind(flags))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.redisAddr, "redis", "", "clear the Redis cache at this address instead of the local one")
	cmd.Flags().IntVar(&flags.redisDB, "redis-db", 0, "Redis database number")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count cached routes and scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := c.newCache(ctx, cacheFlags{})
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			counter, ok := ch.(cache.Counter)
			if !ok {
				printInfo("Caching is disabled")
				return nil
			}
			counts, err := counter.Count(ctx)
			if err != nil {
				return fmt.Errorf("count entries: %w", err)
			}
			for _, kind := range []string{cache.KindRoute, cache.KindScene, cache.KindOther} {
				printKeyValue(kind, strconv.Itoa(counts[kind]))
			}
			return nil
		},
	}
}
