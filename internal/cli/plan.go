package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"potato-racer/internal/agent"
	"potato-racer/internal/display"
	"potato-racer/internal/logger"
	"potato-racer/internal/solver"
	"potato-racer/internal/track"
)

var planFrom string

type planResult struct {
	file  string
	track *track.Track
	step  track.Step
	path  []track.Cell
}

var planCmd = &cobra.Command{
	Use:   "plan <track>...",
	Short: "Plan every given track from one start cell and print the first step",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := track.ParseCell(planFrom)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		factory, err := newFactory()
		if err != nil {
			return err
		}

		results, err := planAll(cmd.Context(), factory, from, args, cfg.PlanConcurrency)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range results {
			fmt.Fprintf(out, "%s (%s): first step %s\n", r.file, r.track.Name, display.FormatStep(r.step))
			fmt.Fprintf(out, "  %s\n", display.FormatRoute(r.track.Target, r.path))
		}
		return nil
	},
}

// planAll plans each track with its own agent, at most limit at a time.
// Results keep the order of files.
func planAll(ctx context.Context, factory solver.Factory, from track.Cell, files []string, limit int) ([]planResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]planResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			t, err := track.Load(file)
			if err != nil {
				return err
			}
			a := agent.New(factory)
			step, err := a.Move(gctx, from, t)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			path := a.Path()
			logger.Log.Printf("[Plan] %s\n%s", file, display.FormatRouteFull(t.Target, path))
			results[i] = planResult{file: file, track: t, step: step, path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func init() {
	planCmd.Flags().StringVar(&planFrom, "from", "", "start cell as row,col")
	_ = planCmd.MarkFlagRequired("from")
}
