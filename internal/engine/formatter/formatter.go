// Package formatter renders dot's command results for the terminal or as JSON.
package formatter

import (
	"github.com/irahardianto/thedot/internal/engine/config"
	"github.com/irahardianto/thedot/internal/engine/hooks"
)

// ValidationReport is the verdict on one commit message.
type ValidationReport struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Suffix  string `json:"suffix"`
	Source  string `json:"source"`
}

// ConfigWriteReport describes a suffix written to a configuration file.
type ConfigWriteReport struct {
	Path   string `json:"path"`
	Suffix string `json:"suffix"`
}

// HooksReport is the outcome of installing or uninstalling the hooks.
type HooksReport struct {
	Operation string         `json:"operation"`
	HooksDir  string         `json:"hooks_dir"`
	Results   []hooks.Result `json:"results"`
}

// StatusReport lists the state of every managed hook.
type StatusReport struct {
	HooksDir string         `json:"hooks_dir"`
	Hooks    []hooks.Status `json:"hooks"`
}

// InitReport is the outcome of dot init.
type InitReport struct {
	Hooks         HooksReport `json:"hooks"`
	ConfigPath    string      `json:"config_path,omitempty"`
	ConfigCreated bool        `json:"config_created"`
	Suffix        string      `json:"suffix"`
}

// DoctorReport is the health check of the current repository.
type DoctorReport struct {
	GitDir          string                `json:"git_dir"`
	Branch          string                `json:"branch,omitempty"`
	ProtectedBranch bool                  `json:"protected_branch"`
	Hooks           []hooks.Status        `json:"hooks"`
	Suffix          config.ResolvedSuffix `json:"suffix"`
	ConfigFiles     []string              `json:"config_files"`
	SampleValid     bool                  `json:"sample_valid"`
}

// Healthy reports whether every hook is installed and the sample message validates.
func (r DoctorReport) Healthy() bool {
	for _, h := range r.Hooks {
		if h.State != hooks.StateInstalled {
			return false
		}
	}
	return r.SampleValid
}

// Formatter renders command results.
type Formatter interface {
	Validation(r ValidationReport) string
	Suffix(s config.ResolvedSuffix) string
	ConfigWrite(r ConfigWriteReport) string
	Hooks(r HooksReport) string
	Status(r StatusReport) string
	Init(r InitReport) string
	Doctor(r DoctorReport) string
}
