package formatter

import (
	"encoding/json"

	"github.com/irahardianto/thedot/internal/engine/config"
)

// JSONFormatter renders results as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Validation returns the verdict as JSON.
func (f *JSONFormatter) Validation(r ValidationReport) string { return marshal(r) }

// Suffix returns the resolved suffix as JSON.
func (f *JSONFormatter) Suffix(s config.ResolvedSuffix) string { return marshal(s) }

// ConfigWrite returns the written path and suffix as JSON.
func (f *JSONFormatter) ConfigWrite(r ConfigWriteReport) string { return marshal(r) }

// Hooks returns the per-hook results as JSON.
func (f *JSONFormatter) Hooks(r HooksReport) string { return marshal(r) }

// Status returns the per-hook states as JSON.
func (f *JSONFormatter) Status(r StatusReport) string { return marshal(r) }

// Init returns the init summary as JSON.
func (f *JSONFormatter) Init(r InitReport) string { return marshal(r) }

// Doctor returns the health check as JSON, with the overall verdict added.
func (f *JSONFormatter) Doctor(r DoctorReport) string {
	return marshal(struct {
		DoctorReport
		Healthy bool `json:"healthy"`
	}{r, r.Healthy()})
}

func marshal(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Report values contain only strings, bools and slices of them.
		return `{"error": "failed to marshal result"}` + "\n"
	}
	return string(data) + "\n"
}
