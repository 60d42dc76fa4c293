package sim

// LevelSummary is the per-staffing-level tuple handed to a Reporter.
// HasData is false for a gap: no replication of the level produced a result.
type LevelSummary struct {
	NumWorkers       int     `json:"num_workers" yaml:"num_workers"`
	HasData          bool    `json:"has_data" yaml:"has_data"`
	Replications     int     `json:"replications" yaml:"replications"`
	MeanIDWait       float64 `json:"mean_id_wait" yaml:"mean_id_wait"`
	MeanPersonalWait float64 `json:"mean_personal_wait" yaml:"mean_personal_wait"`
	MeanTotalWait    float64 `json:"mean_total_wait" yaml:"mean_total_wait"`
	MeanP95TotalWait float64 `json:"mean_p95_total_wait" yaml:"mean_p95_total_wait"`
	TotalWaitCI95    float64 `json:"total_wait_ci95" yaml:"total_wait_ci95"`
	Faults           int     `json:"faults" yaml:"faults"` // replicates aborted by ErrSimulationFault
}

// NewLevelSummary flattens res. A nil or empty res yields a gap that still
// carries the fault count.
func NewLevelSummary(numWorkers int, res *LevelResult) LevelSummary {
	if res == nil {
		return LevelSummary{NumWorkers: numWorkers}
	}
	if !res.HasData() {
		return LevelSummary{NumWorkers: numWorkers, Faults: res.Faults}
	}
	return LevelSummary{
		NumWorkers:       numWorkers,
		HasData:          true,
		Replications:     res.Replications,
		MeanIDWait:       res.MeanIDWait,
		MeanPersonalWait: res.MeanPersonalWait,
		MeanTotalWait:    res.MeanTotalWait,
		MeanP95TotalWait: res.MeanP95TotalWait,
		TotalWaitCI95:    res.TotalWaitSpread.CI95,
		Faults:           res.Faults,
	}
}

// Reporter consumes sweep output. Rendering is up to the implementation.
type Reporter interface {
	// ReportLevel is called once per staffing level, in ascending order.
	ReportLevel(s LevelSummary) error
	// ReportSweep is called once at the end with every level, gaps included.
	ReportSweep(all []LevelSummary) error
}
