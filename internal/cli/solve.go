package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/eventgrid/internal/metrics"
	"github.com/limaJavier/eventgrid/internal/render"
	"github.com/limaJavier/eventgrid/pkg/model"
)

func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	var maxIterations uint64

	cmd := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Build and print a timetable",
		Long: `Build a timetable for the problem described in a JSON or YAML file.

The grid is written to stdout in the selected format. The process exits with 10 when a
timetable was built, 20 when none exists within the iteration ceiling and 1 on errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), rootOpts, args[0], maxIterations, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Uint64Var(&maxIterations, "max-iterations", 0, "ceiling on search iterations; overrides the configured value")

	return cmd
}

func runSolve(ctx context.Context, opts *RootOptions, file string, maxIterations uint64, out io.Writer) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	if maxIterations != 0 {
		cfg.Scheduler.MaxIterations = maxIterations
	}

	problem, err := model.ProblemFromFile(file)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot parse problem file", err)
	}

	if cfg.Scheduler.Precheck {
		if err := model.Precheck(problem); err != nil {
			return classify(err)
		}
	}

	recorder := metrics.NewRecorder()
	scheduler := model.NewBacktrackingScheduler(model.BacktrackingConfig{
		MaxIterations: cfg.Scheduler.MaxIterations,
		Logger:        log,
		Observer:      recorder,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.Scheduler.Timeout)
	defer cancel()

	grid, stats, err := scheduler.Build(ctx, problem)

	if cfg.Metrics.File != "" {
		if err := recorder.WriteToTextfile(cfg.Metrics.File); err != nil {
			log.Error("cannot write metrics file", zap.String("path", cfg.Metrics.File), zap.Error(err))
		}
	}

	if err != nil {
		return classify(err)
	} else if !scheduler.Verify(grid, problem) {
		return NewExitError(ExitFailure, "built timetable failed verification")
	}

	if err := render.Write(out, grid, opts.Format); err != nil {
		return WrapExitError(ExitFailure, "cannot write timetable", err)
	}
	if opts.Format == render.FormatText {
		fmt.Fprintf(out, "\niterations: %d  selections: %d  evaluations: %d  commits: %d  retractions: %d\n",
			stats.Iterations, stats.Selections, stats.Evaluations, stats.Commits, stats.Retractions)
	}

	opts.Status = ExitSolved
	return nil
}

// Maps engine errors to exit codes
func classify(err error) error {
	if errors.Is(err, model.ErrUnsatisfiable) {
		return WrapExitError(ExitUnsatisfiable, "no timetable exists", err)
	}
	return WrapExitError(ExitFailure, "cannot build timetable", err)
}
