package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/pipeline"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/render"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

// displayFlags control how a map is shown in the terminal.
type displayFlags struct {
	plain bool // print the ASCII map instead of the colored one
	costs bool // print the cost overlay of the last routed net
}

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		cacheOpts  cacheFlags
		display    displayFlags
	)
	opts := pipeline.Options{Ordering: pipeline.DefaultOrdering, Seed: pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "route [problem.toml]",
		Short: "Route the nets of a problem file",
		Long: `Route every net of a problem file and print the resulting layout.

Each attempt routes all nets in a different order and the cheapest complete
layout wins. By default there is one attempt per net, each starting the
rotation at a different net; --order shuffle tries seeded permutations instead.

Results are cached locally (or in redis with --redis) keyed by the problem and
the routing options. Text output goes to the terminal unless -o is given;
json, dot and svg are written next to the problem file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := errors.ValidateFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.Formats = formats
			return c.runRoute(cmd.Context(), args[0], opts, output, cacheOpts, display)
		},
	}

	cmd.Flags().IntVarP(&opts.Attempts, "attempts", "n", 0, "orderings to try (default: the problem's value, else one per net)")
	cmd.Flags().StringVar(&opts.Ordering, "order", opts.Ordering, "ordering strategy: rotation, shuffle")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "seed for --order shuffle")
	cmd.Flags().IntVar(&opts.MaxTunnel, "max-tunnel", 0, "longest tunnel in tiles (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatText, "output format(s): text, json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&display.plain, "plain", false, "print the map without colors")
	cmd.Flags().BoolVar(&display.costs, "costs", false, "print the cost overlay of the last routed net")
	cacheOpts.register(cmd)

	return cmd
}

// runRoute loads, routes, displays and writes one problem.
func (c *CLI) runRoute(ctx context.Context, input string, opts pipeline.Options, output string, cacheOpts cacheFlags, display displayFlags) error {
	p, err := pipeline.LoadFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cacheOpts)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	total := opts.AttemptsFor(p)
	if total <= 0 {
		total = len(p.Nets)
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Routing %d nets...", len(p.Nets)))
	opts.Progress = func(a route.Attempt) {
		spinner.SetMessage(fmt.Sprintf("Routing attempt %d/%d...", a.Index+1, total))
	}
	prog := newProgress(c.Logger)
	spinner.Start()

	out, err := runner.Execute(ctx, p, opts)
	if err != nil {
		spinner.StopWithError("Routing failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Routed %d nets", len(out.Nets)))

	res := out.Result
	if res.Solved {
		printSuccess("Routed %s", StyleHighlight.Render(p.Name))
	} else {
		printWarning("No complete layout for %s", p.Name)
	}
	printStats(len(out.Nets), len(res.Belts), res.Cost, res.Solved, out.CacheInfo.RouteHit)

	paths := outputPaths(opts.Formats, input, output)
	if _, toFile := paths[pipeline.FormatText]; !toFile && slices.Contains(opts.Formats, pipeline.FormatText) {
		showMap(out.Map, out.Nets, labels(p), display)
	}
	if display.costs {
		if out.CacheInfo.RouteHit {
			printWarning("Cost overlay needs a fresh route; rerun with --refresh")
		} else {
			printBlock(render.Costs(out.Map))
		}
	}

	written, err := writeArtifacts(out.Artifacts, opts.Formats, paths)
	for _, path := range written {
		printFile(path)
	}
	if err != nil {
		return err
	}

	if !res.Solved {
		printDetail("%s", res.Error)
		return errors.New(errors.ErrCodeUnroutable, "%s: no layout connects every net", p.Name)
	}
	printNextStep("Browse interactively", appName+" view "+input)
	return nil
}

// showMap prints the routed map and the per-net summary.
func showMap(m *grid.Map, nets grid.Netlist, names []string, display displayFlags) {
	if display.plain {
		printBlock(render.ASCII(m))
		return
	}
	printBlock(render.Styled(m, render.StyleOptions{}))
	printBlock(render.Summary(render.Stats(m, nets, names)))
}

func labels(p *problem.Problem) []string {
	out := make([]string, len(p.Nets))
	for i, n := range p.Nets {
		out[i] = n.Label(i)
	}
	return out
}
