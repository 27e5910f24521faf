// Package run implements the interactive wikitable loop and the settings it
// shares with batch mode.
package run

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/internal/config"
	"github.com/flarebyte/papyrus/internal/script"
	"github.com/flarebyte/papyrus/internal/stage"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

// DefaultDir is the output directory created under the working directory.
const DefaultDir = "Files"

// Settings are the resolved wikitable flags.
type Settings struct {
	cmdutil.Common
	UserAgent    string
	TimeoutMs    int
	Format       string
	Filter       string
	Map          string
	LuaTimeoutMs int
	Sidecar      bool

	Env config.Env
}

// Bind registers the wikitable persistent flags on root.
func (s *Settings) Bind(root *cobra.Command) {
	s.Common.Bind(root)
	pf := root.PersistentFlags()
	pf.StringVar(&s.UserAgent, "user-agent", "", "User-Agent sent to Wikipedia")
	pf.IntVar(&s.TimeoutMs, "timeout", int(wikitable.DefaultTimeout/time.Millisecond), "HTTP timeout in milliseconds (0 disables)")
	pf.StringVar(&s.Format, "format", string(wikitable.FormatCSV), "Output format: csv or xlsx")
	pf.StringVar(&s.Filter, "filter", "", "Lua expression keeping matching rows")
	pf.StringVar(&s.Map, "map", "", "Lua expression rewriting each row")
	pf.IntVar(&s.LuaTimeoutMs, "lua-timeout", 0, "Per-row Lua time limit in milliseconds")
	pf.BoolVar(&s.Sidecar, "sidecar", false, "Write a .meta.yaml file next to each table")
}

// Resolve applies environment values to flags left unset and sets up
// logging.
func (s *Settings) Resolve(cmd *cobra.Command) error {
	env, err := s.Common.Resolve(cmd, DefaultDir)
	if err != nil {
		return err
	}
	s.Env = env
	s.UserAgent = cmdutil.Pick(cmd, "user-agent", s.UserAgent, env.UserAgent)
	if f := cmd.Flags().Lookup("timeout"); f != nil && !f.Changed && env.TimeoutMs >= 0 {
		s.TimeoutMs = env.TimeoutMs
	}
	return nil
}

// Deps builds the pipeline dependencies for these settings.
func (s *Settings) Deps(ctx context.Context) (stage.Deps, error) {
	st, err := cmdutil.OpenStorage(ctx, s.Env.Storage)
	if err != nil {
		return stage.Deps{}, err
	}
	return stage.Deps{
		Fetcher:       wikitable.NewFetcher(time.Duration(s.TimeoutMs)*time.Millisecond, s.UserAgent),
		Scripts:       script.NewRows(s.Filter, s.Map, s.LuaTimeoutMs),
		Storage:       st,
		StoragePrefix: s.Env.Storage.Prefix,
		Sidecar:       s.Sidecar,
	}, nil
}
