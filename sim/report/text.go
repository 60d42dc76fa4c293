package report

import (
	"fmt"
	"io"

	"github.com/inference-sim/checkpoint-sim/sim"
)

// TextReporter prints one console line per staffing level and a closing
// table of the levels that produced data.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter writes to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// ReportLevel prints the level line or the no-data marker. Faulted
// replicates are appended when there are any.
func (r *TextReporter) ReportLevel(s sim.LevelSummary) error {
	if !s.HasData {
		if s.Faults > 0 {
			_, err := fmt.Fprintf(r.w, "Workers %2d | no completed passengers in replicates (%d faulted).\n", s.NumWorkers, s.Faults)
			return err
		}
		_, err := fmt.Fprintf(r.w, "Workers %2d | no completed passengers in replicates.\n", s.NumWorkers)
		return err
	}
	line := fmt.Sprintf("Workers %2d | ID wait %.2f min | Personal wait %.2f min | Total wait %.2f min",
		s.NumWorkers, s.MeanIDWait, s.MeanPersonalWait, s.MeanTotalWait)
	if s.Faults > 0 {
		line += fmt.Sprintf(" | %d faulted", s.Faults)
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

// ReportSweep prints the summary table.
func (r *TextReporter) ReportSweep(all []sim.LevelSummary) error {
	if _, err := fmt.Fprintln(r.w, "=== Staffing Sweep ==="); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "%-8s %-6s %-10s %-14s %-11s %-10s %-10s %-6s\n",
		"Workers", "Reps", "ID wait", "Personal wait", "Total wait", "P95 total", "±CI95", "Faults"); err != nil {
		return err
	}
	gaps, faults := 0, 0
	for _, s := range all {
		faults += s.Faults
		if !s.HasData {
			gaps++
			continue
		}
		if _, err := fmt.Fprintf(r.w, "%-8d %-6d %-10.2f %-14.2f %-11.2f %-10.2f %-10.2f %-6d\n",
			s.NumWorkers, s.Replications, s.MeanIDWait, s.MeanPersonalWait, s.MeanTotalWait,
			s.MeanP95TotalWait, s.TotalWaitCI95, s.Faults); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "Levels: %d (%d without data, %d faulted replicates)\n", len(all), gaps, faults)
	return err
}
