package commands

import (
	"fmt"

	"github.com/irahardianto/thedot/internal/engine/commitmsg"
	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/irahardianto/thedot/internal/engine/git"
	"github.com/irahardianto/thedot/internal/engine/hooks"
	"github.com/spf13/cobra"
)

// sampleSubject is prefixed to the active suffix to exercise the validator.
const sampleSubject = "doc: check "

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the repository, hooks and suffix configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ws, err := newWorkspace()
		if err != nil {
			return err
		}

		gitDir, ok := ws.git.GitDir(ctx)
		if !ok {
			return git.ErrNotRepository
		}

		statuses, err := hooks.NewManager(ws.git).Status(ctx)
		if err != nil {
			return err
		}

		suffix := ws.resolver.Resolve(ctx)
		report := formatter.DoctorReport{
			GitDir:      gitDir,
			Hooks:       statuses,
			Suffix:      suffix,
			ConfigFiles: ws.resolver.ExistingFiles(ctx),
			SampleValid: commitmsg.Validate(sampleSubject+suffix.Suffix, suffix.Suffix),
		}
		if branch, ok := ws.git.CurrentBranch(ctx); ok {
			report.Branch = branch
			report.ProtectedBranch = branch == "main" || branch == "master"
		}

		fmt.Fprint(cmd.OutOrStdout(), newFormatter(cmd.OutOrStdout()).Doctor(report))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
