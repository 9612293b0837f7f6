package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/eventgrid/internal/config"
	"github.com/limaJavier/eventgrid/internal/logger"
	"github.com/limaJavier/eventgrid/internal/render"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	ConfigFile string
	Status     int // Exit code left by the last successful command
}

func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "eventgrid",
		Short:         "Place events on a grid of time slots and rooms",
		Long:          "Builds timetables by placing every event on a (time slot, room) cell while honouring sequential, concurrent, non-concurrent, at and in constraints.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(render.Formats, opts.Format) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, render.Formats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every search step")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", render.FormatText, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to a configuration file; eventgrid.yaml is used when present")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// Loads the configuration and builds the logger shared by every command
func setup(opts *RootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "cannot load configuration", err)
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "cannot build logger", err)
	}
	return cfg, log, nil
}
