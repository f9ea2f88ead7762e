package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/pipeline"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
)

// renderCommand creates the render command for re-rendering saved results.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		cacheOpts  cacheFlags
		display    displayFlags
	)

	cmd := &cobra.Command{
		Use:   "render [result.json]",
		Short: "Render a saved routing result",
		Long: `Render a result written by 'route -f json' without routing again.

The result file carries the problem and every committed belt, so the map is
rebuilt exactly. SVG output is cached by result id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := errors.ValidateFormats(formatsStr)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], pipeline.Options{Formats: formats}, output, cacheOpts, display)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatSVG, "output format(s): text, json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&display.plain, "plain", false, "print the map without colors")
	cacheOpts.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, cacheOpts cacheFlags, display displayFlags) error {
	res, err := problem.ImportResult(input)
	if err != nil {
		return errors.FromRouting(err)
	}
	m, nets, err := res.Map()
	if err != nil {
		return errors.FromRouting(err)
	}

	runner, err := c.newRunner(ctx, cacheOpts)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, res, m, opts)
	if err != nil {
		return err
	}
	c.Logger.Debug("rendered result", "id", res.ID, "formats", opts.Formats, "cached", hit)

	paths := outputPaths(opts.Formats, input, output)
	if _, toFile := paths[pipeline.FormatText]; !toFile && slices.Contains(opts.Formats, pipeline.FormatText) {
		showMap(m, nets, labels(&res.Problem), display)
	}
	written, err := writeArtifacts(artifacts, opts.Formats, paths)
	for _, path := range written {
		printFile(path)
	}
	return err
}
