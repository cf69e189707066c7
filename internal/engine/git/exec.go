package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/irahardianto/thedot/internal/platform/logger"
)

// ExecService implements Service by running git commands via os/exec.
type ExecService struct {
	// WorkDir is the working directory for git commands.
	// If empty, the current directory is used.
	WorkDir string
}

// NewExecService creates a new ExecService with the given working directory.
func NewExecService(workDir string) *ExecService {
	return &ExecService{WorkDir: workDir}
}

// IsRepo reports whether `git rev-parse --git-dir` succeeds.
func (s *ExecService) IsRepo(ctx context.Context) bool {
	_, ok := s.GitDir(ctx)
	return ok
}

// GitDir returns the absolute git directory as reported by `git rev-parse --git-dir`.
func (s *ExecService) GitDir(ctx context.Context) (string, bool) {
	return s.revParsePath(ctx, "--git-dir")
}

// RepoRoot returns the absolute top-level directory as reported by `git rev-parse --show-toplevel`.
// A bare repository has no working tree and yields false.
func (s *ExecService) RepoRoot(ctx context.Context) (string, bool) {
	return s.revParsePath(ctx, "--show-toplevel")
}

// CurrentBranch returns the output of `git rev-parse --abbrev-ref HEAD`.
func (s *ExecService) CurrentBranch(ctx context.Context) (string, bool) {
	out, err := s.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		logger.FromContext(ctx).Debug("branch lookup failed", "error", err)
		return "", false
	}
	branch := strings.TrimSpace(out)
	return branch, branch != ""
}

// revParsePath runs `git rev-parse <flag>` and resolves the result against the work dir.
func (s *ExecService) revParsePath(ctx context.Context, flag string) (string, bool) {
	log := logger.FromContext(ctx)

	out, err := s.runGit(ctx, "rev-parse", flag)
	if err != nil {
		log.Debug("git probe failed", "flag", flag, "error", err)
		return "", false
	}

	p := strings.TrimSpace(out)
	if p == "" {
		return "", false
	}
	if !filepath.IsAbs(p) {
		base := s.WorkDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				log.Debug("resolving git path", "path", p, "error", err)
				return "", false
			}
			base = wd
		}
		p = filepath.Join(base, p)
	}

	log.Debug("git probe", "flag", flag, "path", p)
	return filepath.Clean(p), true
}

// runGit executes a git command and returns the stdout.
func (s *ExecService) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- args are controlled by the application, not user input
	cmd.Dir = s.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
