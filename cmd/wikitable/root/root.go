// Package root wires the wikitable commands.
package root

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/cmd/wikitable/batch"
	"github.com/flarebyte/papyrus/cmd/wikitable/run"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

// NewRootCmd creates the root command for wikitable.
func NewRootCmd() *cobra.Command {
	s := &run.Settings{}
	cmd := &cobra.Command{
		Use:   "wikitable",
		Short: "Download a table from a Wikipedia page as CSV or XLSX",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := s.Deps(cmd.Context())
			if err != nil {
				return err
			}
			return run.Interactive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.OutDir, wikitable.ParseFormat(s.Format), deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	s.Bind(cmd)

	cmd.AddCommand(cmdutil.NewVersionCmd("wikitable"))
	cmd.AddCommand(batch.NewCmd(s))
	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
