package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/irahardianto/thedot/internal/platform/logger"
	"github.com/spf13/cobra"
)

var flagConfigPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the worship suffix configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active worship suffix and its source",
	Args:  cobra.NoArgs,
	RunE:  runShowSuffix,
}

var configShowSuffixCmd = &cobra.Command{
	Use:   "show-suffix",
	Short: "Print the active worship suffix and its source",
	Args:  cobra.NoArgs,
	RunE:  runShowSuffix,
}

var configSetSuffixCmd = &cobra.Command{
	Use:   "set-suffix <value...>",
	Short: "Write the worship suffix to a .dot.ini file",
	Long: `Join the arguments with spaces and store the result as [dot] worship_suffix.
Without --path the file is .dot.ini at the repository root, or in the working
directory outside a repository. Other sections and keys in the file are kept.`,
	Example: `  dot config set-suffix BECAUSE I ADORE THE DOT`,
	Args: func(_ *cobra.Command, args []string) error {
		if strings.TrimSpace(strings.Join(args, " ")) == "" {
			return errors.New("provide a non-empty worship suffix")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		ws, err := newWorkspace()
		if err != nil {
			return err
		}

		suffix := strings.Join(args, " ")
		path, err := ws.resolver.Write(ctx, flagConfigPath, suffix)
		if err != nil {
			return err
		}
		log.Info("suffix written", "path", path)

		if active := ws.resolver.Resolve(ctx); active.Source != path {
			log.Warn("written suffix is shadowed by a higher-precedence source", "active", active.Source)
		}

		report := formatter.ConfigWriteReport{Path: path, Suffix: suffix}
		fmt.Fprint(cmd.OutOrStdout(), newFormatter(cmd.OutOrStdout()).ConfigWrite(report))
		return nil
	},
}

func init() {
	configSetSuffixCmd.Flags().StringVar(&flagConfigPath, "path", "", "Write to this file instead of the default .dot.ini")

	configCmd.AddCommand(configShowCmd, configShowSuffixCmd, configSetSuffixCmd)
	rootCmd.AddCommand(configCmd)
}
