// Package hooks installs dot's git hooks and implements what they do at commit time.
package hooks

import (
	"bytes"
	"fmt"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// CommitMsg and PrepareCommitMsg are the git hook names dot manages.
	CommitMsg        = "commit-msg"
	PrepareCommitMsg = "prepare-commit-msg"

	// Marker tags every hook file written by dot.
	Marker = "# dot-managed"
	// BackupSuffix is appended to a foreign hook's name when it is moved aside.
	BackupSuffix = ".backup"
	// Binary is the executable the shims delegate to.
	Binary = "dot"
)

// Names lists the managed hooks in the order they are installed and reported.
var Names = []string{CommitMsg, PrepareCommitMsg}

const shimTemplate = `#!/bin/sh
# dot-managed
# Installed by '%[2]s hooks install'. Run '%[2]s hooks uninstall' to remove.
if command -v %[2]s >/dev/null 2>&1; then
	exec %[2]s hook %[1]s "$@"
fi
echo "%[2]s: executable not found on PATH, skipping %[1]s" >&2
exit 0
`

// RenderShim returns the hook script for name. The script is parsed as POSIX
// shell before it is returned.
func RenderShim(name string) ([]byte, error) {
	script := []byte(fmt.Sprintf(shimTemplate, name, Binary))

	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(bytes.NewReader(script), name); err != nil {
		return nil, fmt.Errorf("rendering %s hook: %w", name, err)
	}
	return script, nil
}

// isManaged reports whether hook content was written by dot.
func isManaged(content []byte) bool {
	return bytes.Contains(content, []byte(Marker))
}
