package trace

// TraceSummary aggregates statistics from a Recorder.
type TraceSummary struct {
	TotalTransitions int
	TotalChoices     int
	// TiedChoices counts decisions where more than one scanner had the minimum load.
	TiedChoices     int
	MeanChosenLoad  float64
	ScannerCounts   map[int]int    // scanner index → times chosen
	TransitionCount map[string]int // target state → count
}

// Summarize computes aggregate statistics from a Recorder.
// Safe for nil or empty recorders (returns zero-value fields).
func Summarize(r *Recorder) *TraceSummary {
	summary := &TraceSummary{
		ScannerCounts:   make(map[int]int),
		TransitionCount: make(map[string]int),
	}
	if r == nil {
		return summary
	}

	summary.TotalTransitions = len(r.Transitions)
	for _, t := range r.Transitions {
		summary.TransitionCount[t.To]++
	}

	if len(r.Choices) > 0 {
		totalLoad := 0
		for _, c := range r.Choices {
			summary.ScannerCounts[c.Chosen]++
			if c.Chosen >= 0 && c.Chosen < len(c.Loads) {
				chosen := c.Loads[c.Chosen]
				totalLoad += chosen
				ties := 0
				for _, l := range c.Loads {
					if l == chosen {
						ties++
					}
				}
				if ties > 1 {
					summary.TiedChoices++
				}
			}
		}
		summary.TotalChoices = len(r.Choices)
		summary.MeanChosenLoad = float64(totalLoad) / float64(len(r.Choices))
	}

	return summary
}
