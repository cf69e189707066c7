package commands

import (
	"context"
	"fmt"

	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/irahardianto/thedot/internal/engine/hooks"
	"github.com/spf13/cobra"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage dot's git hooks",
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the prepare-commit-msg and commit-msg hooks",
	Long: `Write dot's prepare-commit-msg and commit-msg hooks into the repository.
An existing hook that dot did not write is moved to <name>.backup first.
Running install again is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHooks(cmd, "install", (*hooks.Manager).Install)
	},
}

var hooksUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove dot's hooks and restore any backed-up hooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHooks(cmd, "uninstall", (*hooks.Manager).Uninstall)
	},
}

var hooksStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of each managed hook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ws, err := newWorkspace()
		if err != nil {
			return err
		}
		m := hooks.NewManager(ws.git)

		dir, err := m.HooksDir(ctx)
		if err != nil {
			return err
		}
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}

		report := formatter.StatusReport{HooksDir: dir, Hooks: statuses}
		fmt.Fprint(cmd.OutOrStdout(), newFormatter(cmd.OutOrStdout()).Status(report))
		return nil
	},
}

type hooksOp func(*hooks.Manager, context.Context) ([]hooks.Result, error)

// runHooks applies op and prints its per-hook results. Hook failures are part of
// the printed report, so they surface as ErrReported.
func runHooks(cmd *cobra.Command, operation string, op hooksOp) error {
	ctx := cmd.Context()

	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	m := hooks.NewManager(ws.git)

	dir, err := m.HooksDir(ctx)
	if err != nil {
		return err
	}

	results, opErr := op(m, ctx)
	if results == nil {
		return opErr
	}

	report := formatter.HooksReport{Operation: operation, HooksDir: dir, Results: results}
	fmt.Fprint(cmd.OutOrStdout(), newFormatter(cmd.OutOrStdout()).Hooks(report))
	if opErr != nil {
		return ErrReported
	}
	return nil
}

func init() {
	hooksCmd.AddCommand(hooksInstallCmd, hooksUninstallCmd, hooksStatusCmd)
	rootCmd.AddCommand(hooksCmd)
}
