// Package batch runs the table jobs listed in a CUE config.
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/cmd/wikitable/run"
	"github.com/flarebyte/papyrus/internal/config"
	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/script"
	"github.com/flarebyte/papyrus/internal/stage"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

// Saved describes one table written by a batch.
type Saved struct {
	Job    string `json:"job"`
	Output string `json:"output"`
	Rows   int    `json:"rows"`
}

// Summary is printed as JSON once every job has finished.
type Summary struct {
	cmdutil.Tally
	Saved  []Saved          `json:"saved"`
	Errors []stage.JobError `json:"errors,omitempty"`
}

// NewCmd returns the batch subcommand bound to s.
func NewCmd(s *run.Settings) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Download every table listed in a config",
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
			if b.OutDir == "" {
				b.OutDir = s.OutDir
			}
			return Run(cmd.Context(), cmd.OutOrStdout(), b, Apply(b, s, deps))
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (.cue)")
	return cmd
}

// Apply returns a copy of deps with the config's http, lua and sidecar
// sections layered over the command-line settings.
func Apply(b config.Batch, s *run.Settings, deps stage.Deps) stage.Deps {
	if b.HTTP.UserAgent != "" || b.HTTP.HasTimeoutMs {
		timeout := s.TimeoutMs
		if b.HTTP.HasTimeoutMs {
			timeout = b.HTTP.TimeoutMs
		}
		ua := s.UserAgent
		if b.HTTP.UserAgent != "" {
			ua = b.HTTP.UserAgent
		}
		deps.Fetcher = wikitable.NewFetcher(msDuration(timeout), ua)
	}
	if b.Lua.Filter != "" || b.Lua.Map != "" {
		deps.Scripts = script.NewRows(b.Lua.Filter, b.Lua.Map, b.Lua.TimeoutMs)
	}
	deps.Sidecar = deps.Sidecar || b.Sidecar
	return deps
}

// Run executes every table job of b and prints a JSON summary to w.
func Run(ctx context.Context, w io.Writer, b config.Batch, deps stage.Deps) error {
	outDir := b.OutDir
	if outDir == "" {
		outDir = run.DefaultDir
	}
	jobs := make([]stage.Job, len(b.Tables))
	for i, t := range b.Tables {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("wikitable-%d", i+1)
		}
		jobs[i] = stage.Job{URL: t.URL, Name: name, Selector: t.Selector, Format: wikitable.ParseFormat(t.Format), OutDir: outDir}
	}

	saved := make([]Saved, len(jobs))
	keepGoing := b.ErrorsMode == config.ErrorsKeepGoing
	errs, gerr := cmdutil.RunJobs(ctx, len(jobs), b.Workers, keepGoing, func(ctx context.Context, i int) error {
		runID := uuid.NewString()
		jctx, _ := logging.WithFields(ctx, "run_id", runID, "job", jobs[i].Name)
		env, err := stage.RunAll(jctx, stage.TablePipeline, stage.NewEnvelope(jobs[i], runID), deps)
		if err != nil {
			return err
		}
		saved[i] = Saved{Job: jobs[i].Name, Output: filepath.ToSlash(env.Output), Rows: len(env.Table.Rows)}
		return nil
	})
	sum := Summary{Saved: []Saved{}}
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

func msDuration(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }
