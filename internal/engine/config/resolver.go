// Package config resolves the active worship suffix and manages dot's configuration files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/irahardianto/thedot/internal/engine/commitmsg"
	"github.com/irahardianto/thedot/internal/platform/logger"
	"gopkg.in/ini.v1"
)

const (
	// EnvSuffix overrides every configuration file when set to a non-blank value.
	EnvSuffix = "DOT_WORSHIP_SUFFIX"
	// FileName is the name of the per-directory configuration file.
	FileName = ".dot.ini"
	// Section and Key locate the suffix inside FileName.
	Section = "dot"
	Key     = "worship_suffix"

	// SourceEnv and SourceDefault are the non-path values of ResolvedSuffix.Source.
	SourceEnv     = "env"
	SourceDefault = "default"
)

// ErrInvalidConfig is returned when an existing configuration file cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration file")

// iniOptions mirror a plain INI reader: case-sensitive names, no inline comments,
// no backslash continuation, quotes kept as part of the value. Repeated keys are
// tolerated and the first one wins.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	AllowShadows:            true,
}

// ResolvedSuffix is the active suffix and where it came from.
// Source is SourceEnv, SourceDefault, or the absolute path of a .dot.ini file.
type ResolvedSuffix struct {
	Suffix string `json:"suffix"`
	Source string `json:"source"`
}

// RootFinder locates the enclosing repository's working tree.
type RootFinder interface {
	RepoRoot(ctx context.Context) (string, bool)
}

// cachedFile is the parse result of one candidate at a given modification time and size.
type cachedFile struct {
	modTime time.Time
	size    int64
	suffix  string
}

// Resolver produces the active worship suffix.
// Parsed candidates are memoized per (path, mtime, size); the environment is read on every call.
type Resolver struct {
	fs     FileSystem
	root   RootFinder
	getenv func(string) string

	mu    sync.Mutex
	cache map[string]cachedFile
}

// NewResolver creates a Resolver over fs. root may be nil when no repository lookup is wanted.
func NewResolver(fs FileSystem, root RootFinder) *Resolver {
	return NewResolverWithEnv(fs, root, os.Getenv)
}

// NewResolverWithEnv creates a Resolver with a custom getenv function for testability.
func NewResolverWithEnv(fs FileSystem, root RootFinder, getenv func(string) string) *Resolver {
	return &Resolver{
		fs:     fs,
		root:   root,
		getenv: getenv,
		cache:  make(map[string]cachedFile),
	}
}

// Resolve returns the active suffix. It never fails: unreadable or malformed
// candidates are skipped and the default is the last resort.
func (r *Resolver) Resolve(ctx context.Context) ResolvedSuffix {
	log := logger.FromContext(ctx)

	if v := strings.TrimSpace(r.getenv(EnvSuffix)); v != "" {
		log.Debug("suffix from environment", "var", EnvSuffix)
		return ResolvedSuffix{Suffix: v, Source: SourceEnv}
	}

	for _, p := range r.CandidatePaths(ctx) {
		if suffix, ok := r.readSuffix(ctx, p); ok {
			log.Debug("suffix from file", "path", p)
			return ResolvedSuffix{Suffix: suffix, Source: p}
		}
	}

	return ResolvedSuffix{Suffix: commitmsg.DefaultSuffix, Source: SourceDefault}
}

// CandidatePaths lists the .dot.ini files consulted by Resolve, highest precedence
// first: repository root, working directory, home directory. Unknown locations are
// omitted and duplicates keep their first position.
func (r *Resolver) CandidatePaths(ctx context.Context) []string {
	log := logger.FromContext(ctx)

	var dirs []string
	if r.root != nil {
		if root, ok := r.root.RepoRoot(ctx); ok {
			dirs = append(dirs, root)
		}
	}
	if wd, err := r.fs.Getwd(); err == nil {
		dirs = append(dirs, wd)
	} else {
		log.Debug("working directory unavailable", "error", err)
	}
	if home, err := r.fs.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if err != nil {
		log.Debug("home directory unavailable", "error", err)
	}

	seen := make(map[string]bool, len(dirs))
	paths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		p, err := r.abs(filepath.Join(d, FileName))
		if err != nil || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// ExistingFiles returns the candidates that exist as regular files, in precedence order.
// A file is listed even when it does not define a suffix.
func (r *Resolver) ExistingFiles(ctx context.Context) []string {
	var found []string
	for _, p := range r.CandidatePaths(ctx) {
		if info, err := r.fs.Stat(p); err == nil && !info.IsDir() {
			found = append(found, p)
		}
	}
	return found
}

// readSuffix returns the non-blank [dot] worship_suffix value stored at p.
func (r *Resolver) readSuffix(ctx context.Context, p string) (string, bool) {
	log := logger.FromContext(ctx)

	info, err := r.fs.Stat(p)
	if err != nil {
		r.forget(p)
		if !r.fs.IsNotExist(err) {
			log.Debug("skipping unreadable config", "path", p, "error", err)
		}
		return "", false
	}
	if info.IsDir() {
		return "", false
	}

	r.mu.Lock()
	c, hit := r.cache[p]
	r.mu.Unlock()
	if hit && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
		return c.suffix, c.suffix != ""
	}

	data, err := r.fs.ReadFile(p)
	if err != nil {
		log.Debug("skipping unreadable config", "path", p, "error", err)
		return "", false
	}

	suffix, err := parseSuffix(data)
	if err != nil {
		log.Debug("skipping malformed config", "path", p, "error", err)
	}

	r.mu.Lock()
	r.cache[p] = cachedFile{modTime: info.ModTime(), size: info.Size(), suffix: suffix}
	r.mu.Unlock()

	return suffix, suffix != ""
}

func (r *Resolver) forget(p string) {
	r.mu.Lock()
	delete(r.cache, p)
	r.mu.Unlock()
}

// abs makes p absolute against the resolver's working directory.
func (r *Resolver) abs(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	wd, err := r.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return filepath.Join(wd, p), nil
}

// parseSuffix extracts the trimmed [dot] worship_suffix value from INI data.
// A missing section or key yields an empty suffix and no error.
func parseSuffix(data []byte) (string, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	sec, err := f.GetSection(Section)
	if err != nil {
		return "", nil
	}
	if !sec.HasKey(Key) {
		return "", nil
	}
	return strings.TrimSpace(sec.Key(Key).String()), nil
}
