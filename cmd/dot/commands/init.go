package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/irahardianto/thedot/internal/engine/commitmsg"
	"github.com/irahardianto/thedot/internal/engine/config"
	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/irahardianto/thedot/internal/engine/hooks"
	"github.com/irahardianto/thedot/internal/platform/logger"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up dot in the current repository",
	Long: `Install dot's git hooks and, when no .dot.ini exists at the repository root,
the working directory or the home directory, create one at the repository root
with the default worship suffix.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("init started")

		ws, err := newWorkspace()
		if err != nil {
			return err
		}

		if err := initRepository(ctx, hooks.NewManager(ws.git), ws.resolver, cmd.OutOrStdout()); err != nil {
			return err
		}

		log.Info("init completed")
		return nil
	},
}

// initRepository performs the init workflow with injected dependencies for testability.
func initRepository(ctx context.Context, m *hooks.Manager, r *config.Resolver, out io.Writer) error {
	dir, err := m.HooksDir(ctx)
	if err != nil {
		return err
	}

	results, hookErr := m.Install(ctx)
	if results == nil {
		return hookErr
	}
	report := formatter.InitReport{
		Hooks: formatter.HooksReport{Operation: "install", HooksDir: dir, Results: results},
	}

	if existing := r.ExistingFiles(ctx); len(existing) == 0 {
		path, err := r.Write(ctx, "", commitmsg.DefaultSuffix)
		if err != nil {
			return fmt.Errorf("creating %s: %w", config.FileName, err)
		}
		report.ConfigPath, report.ConfigCreated = path, true
	} else {
		report.ConfigPath = existing[0]
	}
	report.Suffix = r.Resolve(ctx).Suffix

	fmt.Fprint(out, newFormatter(out).Init(report))
	if hookErr != nil {
		return ErrReported
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
