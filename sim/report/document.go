package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/checkpoint-sim/sim"
)

// Document is the whole-sweep rendering of JSON and YAML sinks.
type Document struct {
	Levels []sim.LevelSummary `json:"levels" yaml:"levels"`
	Gaps   []int              `json:"gaps" yaml:"gaps"` // staffing levels without data
}

// DocumentReporter buffers nothing per level and writes a single document
// once the sweep ends.
type DocumentReporter struct {
	w      io.Writer
	format Format
}

// NewDocumentReporter writes a JSON or YAML document to w.
// Any format other than FormatYAML renders JSON.
func NewDocumentReporter(w io.Writer, format Format) *DocumentReporter {
	return &DocumentReporter{w: w, format: format}
}

// ReportLevel is a no-op: documents are written whole.
func (r *DocumentReporter) ReportLevel(sim.LevelSummary) error { return nil }

// ReportSweep writes the document.
func (r *DocumentReporter) ReportSweep(all []sim.LevelSummary) error {
	doc := Document{Levels: all, Gaps: make([]int, 0)}
	for _, s := range all {
		if !s.HasData {
			doc.Gaps = append(doc.Gaps, s.NumWorkers)
		}
	}
	if r.format == FormatYAML {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
