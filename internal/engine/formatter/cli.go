package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/irahardianto/thedot/internal/engine/config"
	"github.com/irahardianto/thedot/internal/engine/hooks"
	"github.com/muesli/termenv"
)

// CLIFormatter renders results as human-readable terminal text.
// Color output uses the basic ANSI palette so it reads on any terminal theme.
type CLIFormatter struct {
	Color bool

	ok, fail, warn, value, bold, dim lipgloss.Style
}

// NewCLIFormatter creates a new CLIFormatter.
func NewCLIFormatter(color bool) *CLIFormatter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	return &CLIFormatter{
		Color: color,
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		value: r.NewStyle().Foreground(lipgloss.Color("6")),
		bold:  r.NewStyle().Bold(true),
		dim:   r.NewStyle().Faint(true),
	}
}

// Validation returns the one-line verdict.
func (f *CLIFormatter) Validation(r ValidationReport) string {
	if r.Valid {
		return f.style("✓ Valid commit message - properly worships THE DOT", f.ok) + "\n"
	}
	return f.style(fmt.Sprintf("✗ Invalid commit message - must end with '%s'", r.Suffix), f.fail) + "\n"
}

// Suffix returns the active suffix and its source, one per line.
func (f *CLIFormatter) Suffix(s config.ResolvedSuffix) string {
	return fmt.Sprintf("Current worship suffix: %s\nSource: %s\n",
		f.style(s.Suffix, f.value),
		f.style(s.Source, f.dim))
}

// ConfigWrite confirms a written suffix.
func (f *CLIFormatter) ConfigWrite(r ConfigWriteReport) string {
	return fmt.Sprintf("%s Worship suffix set to '%s' in %s\n",
		f.style("✓", f.ok), r.Suffix, r.Path)
}

// Hooks returns one line per hook for an install or uninstall.
func (f *CLIFormatter) Hooks(r HooksReport) string {
	var b strings.Builder
	for _, res := range r.Results {
		b.WriteString(f.resultLine(res))
	}
	return b.String()
}

func (f *CLIFormatter) resultLine(res hooks.Result) string {
	name := f.style(res.Hook, f.bold)
	switch res.Action {
	case hooks.ActionInstalled:
		return fmt.Sprintf("%s Installed %s hook\n", f.style("✓", f.ok), name)
	case hooks.ActionUpdated:
		return fmt.Sprintf("%s Updated %s hook\n", f.style("✓", f.ok), name)
	case hooks.ActionUnchanged:
		return fmt.Sprintf("%s %s hook already installed\n", f.style("✓", f.ok), name)
	case hooks.ActionBackedUp:
		return fmt.Sprintf("%s Installed %s hook (existing hook backed up to %s)\n",
			f.style("✓", f.ok), name, res.Backup)
	case hooks.ActionRemoved:
		return fmt.Sprintf("%s Removed %s hook\n", f.style("✓", f.ok), name)
	case hooks.ActionRestored:
		return fmt.Sprintf("%s Removed %s hook and restored %s\n", f.style("✓", f.ok), name, res.Backup)
	case hooks.ActionAbsent:
		return fmt.Sprintf("%s %s hook not installed\n", f.style("-", f.dim), name)
	case hooks.ActionSkipped:
		return fmt.Sprintf("%s %s hook was not installed by dot, left in place\n", f.style("!", f.warn), name)
	default:
		return fmt.Sprintf("%s %s hook: %s\n", f.style("✗", f.fail), name, f.style(res.Error, f.fail))
	}
}

// Status returns one line per hook slot.
func (f *CLIFormatter) Status(r StatusReport) string {
	var b strings.Builder
	for _, st := range r.Hooks {
		b.WriteString(f.statusLine(st))
	}
	return b.String()
}

func (f *CLIFormatter) statusLine(st hooks.Status) string {
	var state string
	switch st.State {
	case hooks.StateInstalled:
		state = f.style(string(st.State), f.ok)
	case hooks.StateAbsent:
		state = f.style(string(st.State), f.dim)
	default:
		state = f.style(string(st.State), f.warn)
	}
	line := fmt.Sprintf("%s: %s", f.style(st.Hook, f.bold), state)
	if st.Backup {
		line += f.style(" (backup present)", f.dim)
	}
	return line + "\n"
}

// Init summarizes dot init.
func (f *CLIFormatter) Init(r InitReport) string {
	var b strings.Builder
	b.WriteString(f.Hooks(r.Hooks))
	if r.ConfigCreated {
		fmt.Fprintf(&b, "%s Created %s\n", f.style("✓", f.ok), r.ConfigPath)
	}
	fmt.Fprintf(&b, "Worship suffix: %s\n", f.style(r.Suffix, f.value))
	return b.String()
}

// Doctor returns the health check as one line per topic.
func (f *CLIFormatter) Doctor(r DoctorReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Repo: %s (%s)\n", f.style("OK", f.ok), r.GitDir)

	if r.Branch == "" {
		b.WriteString("Branch: unknown\n")
	} else {
		fmt.Fprintf(&b, "Branch: %s\n", r.Branch)
	}
	if r.ProtectedBranch {
		b.WriteString(f.style("Warning: working directly on main/master is discouraged", f.warn) + "\n")
	}

	parts := make([]string, 0, len(r.Hooks))
	for _, h := range r.Hooks {
		mark := f.style("OK", f.ok)
		if h.State != hooks.StateInstalled {
			mark = f.style("MISSING", f.fail)
		}
		parts = append(parts, h.Hook+"="+mark)
	}
	fmt.Fprintf(&b, "Hooks: %s\n", strings.Join(parts, ", "))

	fmt.Fprintf(&b, "Suffix: %s (source: %s)\n", f.style(r.Suffix.Suffix, f.value), r.Suffix.Source)

	sample := f.style("OK", f.ok)
	if !r.SampleValid {
		sample = f.style("FAILED", f.fail)
	}
	fmt.Fprintf(&b, "Validation: %s on sample message\n", sample)

	if r.Healthy() {
		b.WriteString(f.style("✓ Doctor completed", f.ok) + "\n")
	} else {
		b.WriteString(f.style("! Doctor completed with warnings, run 'dot hooks install'", f.warn) + "\n")
	}
	return b.String()
}

func (f *CLIFormatter) style(s string, st lipgloss.Style) string {
	if !f.Color || s == "" {
		return s
	}
	return st.Render(s)
}
