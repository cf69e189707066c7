package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suffixCmd = &cobra.Command{
	Use:   "suffix",
	Short: "Print the active worship suffix and where it comes from",
	Args:  cobra.NoArgs,
	RunE:  runShowSuffix,
}

// runShowSuffix prints the resolved suffix. Shared by suffix, config show and config show-suffix.
func runShowSuffix(cmd *cobra.Command, _ []string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	resolved := ws.resolver.Resolve(cmd.Context())
	fmt.Fprint(cmd.OutOrStdout(), newFormatter(cmd.OutOrStdout()).Suffix(resolved))
	return nil
}

func init() {
	rootCmd.AddCommand(suffixCmd)
}
