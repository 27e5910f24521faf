// Package run implements the interactive qrgen loop and the code generation
// step batch mode reuses.
package run

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/internal/config"
	"github.com/flarebyte/papyrus/internal/qr"
)

// DefaultDir is the output directory created under the working directory.
const DefaultDir = "Codes"

// Settings are the resolved qrgen flags.
type Settings struct {
	cmdutil.Common
	Scale   int
	Sidecar bool

	Env config.Env
}

// Bind registers the qrgen persistent flags on root.
func (s *Settings) Bind(root *cobra.Command) {
	s.Common.Bind(root)
	pf := root.PersistentFlags()
	pf.IntVar(&s.Scale, "scale", qr.DefaultScale, "Pixels per module")
	pf.BoolVar(&s.Sidecar, "sidecar", false, "Write a .meta.yaml file next to each code")
}

// Resolve applies environment values to flags left unset and sets up
// logging.
func (s *Settings) Resolve(cmd *cobra.Command) error {
	env, err := s.Common.Resolve(cmd, DefaultDir)
	if err != nil {
		return err
	}
	s.Env = env
	return nil
}

// Deps builds the generation dependencies for these settings.
func (s *Settings) Deps(ctx context.Context) (Deps, error) {
	st, err := cmdutil.OpenStorage(ctx, s.Env.Storage)
	if err != nil {
		return Deps{}, err
	}
	return Deps{Storage: st, StoragePrefix: s.Env.Storage.Prefix, Sidecar: s.Sidecar}, nil
}
