package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/irahardianto/thedot/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// Preferences holds user-level settings that persist across repositories.
type Preferences struct {
	Color   bool              `yaml:"-"` // derived from Output.Color
	Verbose bool              `yaml:"-"` // derived from Output.Verbose
	Output  OutputPreferences `yaml:"output"`
}

// OutputPreferences holds output-related user preferences.
type OutputPreferences struct {
	Color   *bool `yaml:"color"`
	Verbose *bool `yaml:"verbose"`
}

// Loader reads user preferences from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// LoadPreferences reads ~/.config/dot/config.yaml.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) LoadPreferences(ctx context.Context) (*Preferences, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		// Without a home directory only defaults and env apply.
		prefs := defaultPreferences()
		applyEnvOverrides(prefs, l.getenv, logger.FromContext(ctx))
		return prefs, nil
	}
	return l.LoadPreferencesFrom(ctx, filepath.Join(home, ".config", "dot", "config.yaml"))
}

// LoadPreferencesFrom reads user preferences from a specific path.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) LoadPreferencesFrom(ctx context.Context, path string) (*Preferences, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading preferences", "path", path)
	prefs := defaultPreferences()

	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			applyEnvOverrides(prefs, l.getenv, log)
			return prefs, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}

	if prefs.Output.Color != nil {
		prefs.Color = *prefs.Output.Color
	}
	if prefs.Output.Verbose != nil {
		prefs.Verbose = *prefs.Output.Verbose
	}

	applyEnvOverrides(prefs, l.getenv, log)

	return prefs, nil
}

// LoadPreferences reads user preferences using the real file system.
func LoadPreferences(ctx context.Context) (*Preferences, error) {
	return NewLoader(&RealFileSystem{}).LoadPreferences(ctx)
}

func defaultPreferences() *Preferences {
	return &Preferences{Color: true}
}

// applyEnvOverrides applies environment variable overrides to the preferences.
func applyEnvOverrides(prefs *Preferences, getenv func(string) string, log *slog.Logger) {
	// Any non-empty NO_COLOR disables color, per no-color.org.
	if getenv("NO_COLOR") != "" {
		prefs.Color = false
	}
	if truthy(getenv("DOT_NO_COLOR")) {
		prefs.Color = false
	}
	if v := getenv("DOT_VERBOSE"); v != "" {
		prefs.Verbose = truthy(v)
		log.Debug("verbosity from environment", "DOT_VERBOSE", v)
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
