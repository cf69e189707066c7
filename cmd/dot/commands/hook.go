package commands

import (
	"fmt"

	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/irahardianto/thedot/internal/engine/hooks"
	"github.com/spf13/cobra"
)

// hookCmd groups the entry points the installed shims call. Git runs them from
// the top of the working tree.
var hookCmd = &cobra.Command{
	Use:    "hook",
	Short:  "Run a git hook (called by the installed shims)",
	Hidden: true,
}

var hookCommitMsgCmd = &cobra.Command{
	Use:   "commit-msg <message-file>",
	Short: "Reject the commit unless its message ends with the worship suffix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ws, err := newWorkspace()
		if err != nil {
			return err
		}

		verdict, err := hooks.CheckCommitMsg(ctx, ws.resolver, args[0])
		if err != nil {
			return err
		}
		if verdict.Valid {
			return nil
		}

		out := cmd.ErrOrStderr()
		report := formatter.ValidationReport{
			Valid:   false,
			Message: verdict.Message,
			Suffix:  verdict.Suffix.Suffix,
			Source:  verdict.Suffix.Source,
		}
		fmt.Fprint(out, newFormatter(out).Validation(report))
		if !flagJSON {
			fmt.Fprintf(out, "Commit aborted. End the message with: %s\n", verdict.Suffix.Suffix)
		}
		return ErrReported
	},
}

var hookPrepareCommitMsgCmd = &cobra.Command{
	Use:   "prepare-commit-msg <message-file> [source] [sha]",
	Short: "Append the worship suffix to the commit message draft",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := newWorkspace()
		if err != nil {
			return err
		}

		source := ""
		if len(args) > 1 {
			source = args[1]
		}
		_, err = hooks.PrepareMessage(cmd.Context(), ws.resolver, args[0], source)
		return err
	},
}

func init() {
	hookCmd.AddCommand(hookCommitMsgCmd, hookPrepareCommitMsgCmd)
	rootCmd.AddCommand(hookCmd)
}
