package cmdutil

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/internal/buildinfo"
)

// NewVersionCmd returns the version subcommand for the named tool.
func NewVersionCmd(tool string) *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Summary())
				return err
			}
			if !asJSON {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tool, buildinfo.Summary())
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s version: %s\n", tool, buildinfo.Summary())
			return EncodeJSON(cmd.OutOrStdout(), struct {
				Tool string `json:"tool"`
				buildinfo.Info
				Timestamp string `json:"timestamp"`
			}{tool, buildinfo.Current(), time.Now().UTC().Format(time.RFC3339Nano)})
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	return cmd
}
