// Package git answers read-only questions about the enclosing git repository.
package git

import (
	"context"
	"errors"
)

// ErrNotRepository is returned by callers that require a repository when the probe finds none.
var ErrNotRepository = errors.New("not in a git repository")

// Service abstracts git repository discovery for testability.
// Every method is advisory: a missing git binary or a failed command yields the
// negative answer rather than an error.
type Service interface {
	// IsRepo reports whether the working directory is inside a git repository.
	IsRepo(ctx context.Context) bool
	// GitDir returns the absolute path of the repository's git directory.
	GitDir(ctx context.Context) (string, bool)
	// RepoRoot returns the absolute path of the working tree's top level.
	RepoRoot(ctx context.Context) (string, bool)
	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, bool)
}
