package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/inference-sim/checkpoint-sim/sim"
)

var csvHeader = []string{
	"num_workers", "has_data", "replications", "faults",
	"mean_id_wait", "mean_personal_wait", "mean_total_wait", "mean_p95_total_wait", "total_wait_ci95",
}

// CSVReporter writes one row per staffing level, ready for charting.
// Gap rows carry has_data=false, their fault count and empty wait columns.
type CSVReporter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVReporter writes to w.
func NewCSVReporter(w io.Writer) *CSVReporter {
	return &CSVReporter{w: csv.NewWriter(w)}
}

// ReportLevel appends a row, writing the header first if needed.
func (r *CSVReporter) ReportLevel(s sim.LevelSummary) error {
	if !r.wroteHeader {
		if err := r.w.Write(csvHeader); err != nil {
			return err
		}
		r.wroteHeader = true
	}
	row := []string{
		strconv.Itoa(s.NumWorkers), strconv.FormatBool(s.HasData),
		strconv.Itoa(s.Replications), strconv.Itoa(s.Faults),
		"", "", "", "", "",
	}
	if s.HasData {
		row[4] = formatFloat(s.MeanIDWait)
		row[5] = formatFloat(s.MeanPersonalWait)
		row[6] = formatFloat(s.MeanTotalWait)
		row[7] = formatFloat(s.MeanP95TotalWait)
		row[8] = formatFloat(s.TotalWaitCI95)
	}
	if err := r.w.Write(row); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

// ReportSweep flushes; rows were already written per level.
func (r *CSVReporter) ReportSweep(all []sim.LevelSummary) error {
	if !r.wroteHeader {
		if err := r.w.Write(csvHeader); err != nil {
			return err
		}
		r.wroteHeader = true
	}
	r.w.Flush()
	return r.w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
