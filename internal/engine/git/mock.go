package git

import (
	"context"
)

// MockService is a test double for git.Service.
// An empty GitDir or Root means "unknown".
type MockService struct {
	Dir    string
	Root   string
	Branch string

	// GitDirCalls counts GitDir lookups.
	GitDirCalls int
}

// IsRepo reports whether a git dir is configured.
func (m *MockService) IsRepo(_ context.Context) bool {
	return m.Dir != ""
}

// GitDir returns the configured git directory.
func (m *MockService) GitDir(_ context.Context) (string, bool) {
	m.GitDirCalls++
	return m.Dir, m.Dir != ""
}

// RepoRoot returns the configured repository root.
func (m *MockService) RepoRoot(_ context.Context) (string, bool) {
	return m.Root, m.Root != ""
}

// CurrentBranch returns the configured branch.
func (m *MockService) CurrentBranch(_ context.Context) (string, bool) {
	return m.Branch, m.Branch != ""
}
