// Package root wires the qrgen commands.
package root

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/cmd/qrgen/batch"
	"github.com/flarebyte/papyrus/cmd/qrgen/run"
)

// NewRootCmd creates the root command for qrgen.
func NewRootCmd() *cobra.Command {
	s := &run.Settings{}
	cmd := &cobra.Command{
		Use:   "qrgen",
		Short: "Generate QR codes as PNG or SVG",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := s.Deps(cmd.Context())
			if err != nil {
				return err
			}
			return run.Interactive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.OutDir, s.Scale, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	s.Bind(cmd)

	cmd.AddCommand(cmdutil.NewVersionCmd("qrgen"))
	cmd.AddCommand(batch.NewCmd(s))
	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
