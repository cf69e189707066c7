package hooks

import (
	"context"
	"fmt"
	"os"

	"github.com/irahardianto/thedot/internal/engine/commitmsg"
	"github.com/irahardianto/thedot/internal/engine/config"
	"github.com/irahardianto/thedot/internal/platform/logger"
)

// SuffixResolver yields the active worship suffix.
type SuffixResolver interface {
	Resolve(ctx context.Context) config.ResolvedSuffix
}

// Verdict is the outcome of checking a commit message.
type Verdict struct {
	Valid   bool                  `json:"valid"`
	Message string                `json:"message"`
	Suffix  config.ResolvedSuffix `json:"suffix"`
}

// CheckCommitMsg reads the message file git passes to commit-msg, cleans it the
// way git will, and validates it against the resolved suffix.
func CheckCommitMsg(ctx context.Context, r SuffixResolver, path string) (Verdict, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by git
	if err != nil {
		return Verdict{}, fmt.Errorf("reading commit message: %w", err)
	}

	suffix := r.Resolve(ctx)
	message := commitmsg.Cleanup(string(data))

	v := Verdict{
		Valid:   commitmsg.Validate(message, suffix.Suffix),
		Message: message,
		Suffix:  suffix,
	}
	logger.FromContext(ctx).Debug("commit-msg checked", "valid", v.Valid, "source", suffix.Source)
	return v, nil
}

// PrepareMessage appends the suffix to an editor-bound draft. Drafts with a
// commit source (message, template, merge, squash, commit) are left alone.
// It reports whether the file was rewritten.
func PrepareMessage(ctx context.Context, r SuffixResolver, path, source string) (bool, error) {
	log := logger.FromContext(ctx)

	if source != "" {
		log.Debug("prepare-commit-msg skipped", "source", source)
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("reading commit message: %w", err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by git
	if err != nil {
		return false, fmt.Errorf("reading commit message: %w", err)
	}

	draft := string(data)
	updated := commitmsg.AppendSuffix(draft, r.Resolve(ctx).Suffix)
	if updated == draft {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing commit message: %w", err)
	}
	log.Debug("prepare-commit-msg appended suffix", "path", path)
	return true, nil
}
