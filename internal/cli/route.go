package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/router"
	"github.com/matzehuels/linkroute/pkg/scene"
	"github.com/matzehuels/linkroute/pkg/sink"
)

const (
	formatJSON = "json"
	formatSVG  = "svg"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	output     string   // output file, or base path when several formats are written
	configPath string   // TOML layout config
	style      string   // overrides the config style for data links
	direction  string   // overrides the config link direction
	formats    []string // "json", "svg"
	refresh    bool     // skip cache reads
	segments   bool     // include segment lists in JSON output
	cache      cacheFlags
}

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "route [scene.json]",
		Short: "Compute link paths for a scene",
		Long: `Compute link paths for a scene file.

The scene lists positioned shapes and the links between them. Every link is
routed with the configured style and written as JSON descriptors, an SVG
preview, or both.

Results are cached locally; identical links are not recomputed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			return c.runRoute(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.routes.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "layout config file (TOML)")
	cmd.Flags().StringVarP(&opts.style, "style", "s", "", "link style: straight, elbow, curve, parallax, association-curve")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "link direction: left-right, right-left, top-bottom, bottom-top")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", formatJSON, "output formats (comma-separated): json, svg")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached routes")
	cmd.Flags().BoolVar(&opts.segments, "segments", false, "include parsed segments in JSON output")
	opts.cache.register(cmd)

	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
	_ = cmd.RegisterFlagCompletionFunc("style", fixedCompletion(styleNames()...))
	_ = cmd.RegisterFlagCompletionFunc("direction", fixedCompletion(
		string(diagram.LeftRight), string(diagram.RightLeft), string(diagram.TopBottom), string(diagram.BottomTop)))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(formatJSON, formatSVG))
	_ = cmd.MarkFlagFilename("config", "toml")

	return cmd
}

func styleNames() []string {
	names := make([]string, len(diagram.Styles))
	for i, s := range diagram.Styles {
		names[i] = string(s)
	}
	return names
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// runRoute loads the scene, routes it and writes the outputs.
func (c *CLI) runRoute(ctx context.Context, input string, opts routeOpts) error {
	logger := loggerFromContext(ctx)

	sc, err := scene.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	if n := scene.Normalize(sc); n > 0 {
		logger.Debug("assigned missing ids", "count", n)
	}

	cfg, err := layoutConfig(opts.configPath, opts.style, opts.direction)
	if err != nil {
		return err
	}

	r, err := c.newRouter(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize router: %w", err)
	}
	defer r.Cache.Close()

	prog := newProgress(logger)
	res, err := r.RouteAll(ctx, sc.Shapes, sc.Links, router.Options{Config: cfg, Refresh: opts.refresh})
	if err != nil {
		return fmt.Errorf("route %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Routed %d links", res.Stats.Routed))

	var written []string
	for _, format := range opts.formats {
		path := outputPath(input, opts.output, format, len(opts.formats))
		var data []byte
		switch format {
		case formatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONConfig(cfg)}
			if opts.segments {
				jsonOpts = append(jsonOpts, sink.WithJSONSegments())
			}
			if data, err = sink.RenderJSON(res, jsonOpts...); err != nil {
				return err
			}
		case formatSVG:
			data = sink.RenderSVG(sc.Shapes, res, sink.WithArrows(), sink.WithLabels())
		}
		if err := writeOutput(path, data); err != nil {
			return err
		}
		written = append(written, path)
	}

	if opts.output == "-" {
		return nil
	}
	printSuccess("Routing complete")
	for _, p := range written {
		printFile(p)
	}
	printStats(res.Stats.Routed, res.Stats.Rejected, res.Stats.CacheHits, res.Stats.SceneHit)
	for _, rj := range res.Rejected {
		printWarning("%s: %s", rj.Link, rj.Reason)
	}
	return nil
}

// layoutConfig loads the config file, if any, and applies flag overrides.
func layoutConfig(path, style, direction string) (diagram.LayoutConfig, error) {
	cfg := diagram.DefaultLayoutConfig()
	if path != "" {
		var err error
		if cfg, err = scene.LoadConfig(path); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if style != "" {
		cfg.Style = diagram.Style(style)
		if !cfg.Style.Known() {
			printWarning("unknown style %q, links will be drawn straight", style)
		}
	}
	if direction != "" {
		d, err := diagram.ParseLinkDirection(direction)
		if err != nil {
			return cfg, err
		}
		cfg.Direction = d
	}
	return cfg, cfg.Validate()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{formatJSON}, nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != formatJSON && f != formatSVG {
			return nil, errs.New(errs.ErrCodeUnsupported, "unknown format %q (want json or svg)", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// outputPath picks the file a format is written to.
func outputPath(input, output, format string, formats int) string {
	switch {
	case output == "-":
		return output
	case output != "" && formats == 1:
		return output
	case output != "":
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".routes." + format
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
