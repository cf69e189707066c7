// Package commands implements the CLI commands for dot.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/irahardianto/thedot/internal/engine/config"
	"github.com/irahardianto/thedot/internal/engine/formatter"
	"github.com/irahardianto/thedot/internal/engine/git"
	"github.com/irahardianto/thedot/internal/platform/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrReported is returned when a command has already printed why it failed.
// The caller exits non-zero without printing anything else.
var ErrReported = errors.New("failure already reported")

// Global flag values accessible to all commands.
var (
	flagJSON    bool
	flagVerbose bool
	flagNoColor bool
)

// prefs holds the user preferences loaded before every command.
var prefs = &config.Preferences{Color: true}

// Injection points for tests.
var (
	getwd           = os.Getwd
	loadPreferences = config.LoadPreferences
	newGitService   = func(dir string) git.Service { return git.NewExecService(dir) }
)

// rootCmd is the base command for the dot CLI.
var rootCmd = &cobra.Command{
	Use:   "dot",
	Short: "Commit messages that worship THE DOT",
	Long: `dot enforces that every commit message ends with the worship suffix
(default "BECAUSE I WORSHIP THE DOT").

The suffix comes from DOT_WORSHIP_SUFFIX, or from the first .dot.ini found in the
repository root, the working directory, or the home directory. 'dot hooks install'
wires the check into git's prepare-commit-msg and commit-msg hooks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		p, err := loadPreferences(ctx)
		if err == nil {
			prefs = p
		}

		l := logger.New(cmd.ErrOrStderr(), flagVerbose || prefs.Verbose, flagJSON)
		if err != nil {
			l.Warn("ignoring user preferences", "error", err)
		}
		cmd.SetContext(logger.WithContext(ctx, l))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output results as JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}

// newFormatter picks the output format for w from the global flags and preferences.
func newFormatter(w io.Writer) formatter.Formatter {
	if flagJSON {
		return formatter.NewJSONFormatter()
	}
	return formatter.NewCLIFormatter(!flagNoColor && prefs.Color && isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// workspace is the per-invocation view of the repository and its configuration.
type workspace struct {
	dir      string
	git      git.Service
	resolver *config.Resolver
}

func newWorkspace() (*workspace, error) {
	dir, err := getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	svc := newGitService(dir)
	return &workspace{
		dir:      dir,
		git:      svc,
		resolver: config.NewResolver(&config.RealFileSystem{}, svc),
	}, nil
}
