package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/irahardianto/thedot/internal/platform/logger"
	"gopkg.in/ini.v1"
)

// ErrInvalidSuffix is returned when a suffix would not read back unchanged from a .dot.ini file.
var ErrInvalidSuffix = errors.New("suffix cannot be stored")

// WriteTarget returns the file Write uses when no target is given:
// .dot.ini at the repository root when it is known, otherwise in the working directory.
func (r *Resolver) WriteTarget(ctx context.Context) (string, error) {
	if r.root != nil {
		if root, ok := r.root.RepoRoot(ctx); ok {
			return r.abs(filepath.Join(root, FileName))
		}
	}
	wd, err := r.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return filepath.Join(wd, FileName), nil
}

// Write sets [dot] worship_suffix in target. Only that entry's line changes; every
// other byte of the file is kept. An empty target selects WriteTarget. The suffix is
// stored verbatim and must read back unchanged, so it cannot span lines.
// The parent directory must already exist. Returns the absolute path written.
func (r *Resolver) Write(ctx context.Context, target, suffix string) (string, error) {
	log := logger.FromContext(ctx)

	if target == "" {
		t, err := r.WriteTarget(ctx)
		if err != nil {
			return "", err
		}
		target = t
	}
	target, err := r.abs(target)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(target)
	info, err := r.fs.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("writing %s: parent directory: %w", target, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("writing %s: %s is not a directory", target, dir)
	}

	data, err := r.load(target)
	if err != nil {
		return "", err
	}
	updated := setSuffixEntry(data, suffix)
	if got, err := parseSuffix(updated); err != nil || got != strings.TrimSpace(suffix) {
		return "", fmt.Errorf("%w: %q cannot be stored in %s", ErrInvalidSuffix, suffix, target)
	}

	if err := r.fs.WriteFile(target, updated, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	r.forget(target)

	log.Debug("suffix written", "path", target)
	return target, nil
}

// load reads an existing file, or returns no data when the file does not exist.
// Existing content must parse.
func (r *Resolver) load(target string) ([]byte, error) {
	data, err := r.fs.ReadFile(target)
	if err != nil {
		if r.fs.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}

	if _, err := ini.LoadSources(iniOptions, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, target, err)
	}
	return data, nil
}
