package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/irahardianto/thedot/internal/engine/commitmsg"
	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <message...>",
	Short: "Check a commit message against the worship suffix",
	Long: `Join the arguments with spaces and check that the result ends with the active
worship suffix. Exit 0 when it does, 1 when it does not.`,
	Example: `  dot validate "feat: add parser BECAUSE I WORSHIP THE DOT"`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("provide a commit message to validate")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ws, err := newWorkspace()
		if err != nil {
			return err
		}

		message := strings.Join(args, " ")
		suffix := ws.resolver.Resolve(ctx)
		report := formatter.ValidationReport{
			Valid:   commitmsg.Validate(message, suffix.Suffix),
			Message: message,
			Suffix:  suffix.Suffix,
			Source:  suffix.Source,
		}

		fmt.Fprint(cmd.OutOrStdout(), newFormatter(cmd.OutOrStdout()).Validation(report))
		if !report.Valid {
			return ErrReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
