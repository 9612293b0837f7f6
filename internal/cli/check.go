package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/limaJavier/eventgrid/internal/render"
	"github.com/limaJavier/eventgrid/pkg/model"
)

// CheckResult summarizes a problem that passed the feasibility precheck
type CheckResult struct {
	Feasible    bool   `json:"feasible" yaml:"feasible"`
	Events      int    `json:"events" yaml:"events"`
	Constraints int    `json:"constraints" yaml:"constraints"`
	TimeSlots   uint64 `json:"timeSlots" yaml:"timeSlots"`
	Rooms       uint64 `json:"rooms" yaml:"rooms"`
}

func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <problem-file>",
		Short: "Run the feasibility precheck without searching",
		Long: `Validate a problem and match every event to a cell its at and in constraints permit.

A failed check proves that no timetable exists. A passed check does not prove that one does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, file string, out io.Writer) error {
	_, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	problem, err := model.ProblemFromFile(file)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot parse problem file", err)
	}

	if err := model.Precheck(problem); err != nil {
		log.Warn("precheck failed", zap.String("file", file), zap.Error(err))
		return classify(err)
	}
	log.Debug("precheck passed", zap.String("file", file))

	result := CheckResult{
		Feasible:    true,
		Events:      len(problem.Events),
		Constraints: len(problem.Constraints),
		TimeSlots:   problem.TimeSlots,
		Rooms:       problem.Rooms,
	}

	switch opts.Format {
	case render.FormatJson:
		err = json.NewEncoder(out).Encode(result)
	case render.FormatYaml:
		err = yaml.NewEncoder(out).Encode(result)
	default:
		_, err = fmt.Fprintf(out, "feasible: %d events fit %d time slots and %d rooms\n", result.Events, result.TimeSlots, result.Rooms)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "cannot write result", err)
	}

	opts.Status = ExitSolved
	return nil
}
