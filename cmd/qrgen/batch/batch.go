// Package batch renders the codes listed in a CUE config.
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/cmd/qrgen/run"
	"github.com/flarebyte/papyrus/internal/config"
	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/qr"
	"github.com/flarebyte/papyrus/internal/stage"
)

// Summary is printed as JSON once every job has finished.
type Summary struct {
	cmdutil.Tally
	Saved  []string         `json:"saved"`
	Errors []stage.JobError `json:"errors,omitempty"`
}

// NewCmd returns the batch subcommand bound to s.
func NewCmd(s *run.Settings) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render every code listed in a config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				return fmt.Errorf("missing required flag: --config")
			}
			b, err := config.ParseBatch(cfgPath)
			if err != nil {
				return err
			}
			deps, err := s.Deps(cmd.Context())
			if err != nil {
				return err
			}
			deps.Sidecar = deps.Sidecar || b.Sidecar
			if b.OutDir == "" {
				b.OutDir = s.OutDir
			}
			return Run(cmd.Context(), cmd.OutOrStdout(), b, s.Scale, deps)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (.cue)")
	return cmd
}

// Run renders every code job of b and prints a JSON summary to w. A job
// without a scale uses scale.
func Run(ctx context.Context, w io.Writer, b config.Batch, scale int, deps run.Deps) error {
	outDir := b.OutDir
	if outDir == "" {
		outDir = run.DefaultDir
	}
	jobs := make([]run.Job, len(b.Codes))
	for i, c := range b.Codes {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("qrcode-%d", i+1)
		}
		s := c.Scale
		if s <= 0 {
			s = scale
		}
		jobs[i] = run.Job{Payload: c.Payload, Name: name, Format: qr.ParseFormat(c.Format), Scale: s, OutDir: outDir}
	}

	saved := make([]string, len(jobs))
	keepGoing := b.ErrorsMode == config.ErrorsKeepGoing
	errs, gerr := cmdutil.RunJobs(ctx, len(jobs), b.Workers, keepGoing, func(ctx context.Context, i int) error {
		runID := uuid.NewString()
		jctx, _ := logging.WithFields(ctx, "run_id", runID, "job", jobs[i].Name)
		res, err := run.Generate(jctx, jobs[i], runID, deps)
		if err != nil {
			return err
		}
		saved[i] = filepath.ToSlash(res.Output)
		return nil
	})
	sum := Summary{Saved: []string{}}
	for i, err := range errs {
		switch {
		case err == nil:
			sum.Succeeded++
			sum.Saved = append(sum.Saved, saved[i])
		case cmdutil.Skipped(err, gerr):
			sum.Skipped++
		default:
			sum.Failed++
			sum.Errors = append(sum.Errors, stage.NewJobError(jobs[i].Name, err))
		}
	}
	stage.SortJobErrors(sum.Errors)
	if err := cmdutil.EncodeJSON(w, sum); err != nil {
		return err
	}
	if gerr != nil {
		return fmt.Errorf("%s: %w", jobs[cmdutil.FailedIndex(errs, gerr)].Name, gerr)
	}
	return cmdutil.EvaluateBatchExit(b.ErrorsMode, sum.Tally)
}
