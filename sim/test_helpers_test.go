package sim

// fixedSource is a RandomSource returning constant draws.
type fixedSource struct {
	uniform     float64 // returned by Uniform regardless of bounds
	exponential float64 // returned by Exponential regardless of mean
}

func (f fixedSource) Uniform(low, high float64) float64 { return f.uniform }
func (f fixedSource) Exponential(mean float64) float64 { return f.exponential }

// testConfig returns a valid configuration tuned for quick tests.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SimTime = 60
	cfg.Replicates = 3
	return cfg
}

// newTestCheckpoint wires a checkpoint with deterministic scan durations.
func newTestCheckpoint(workers, scanners int, checkTime, scanTime float64) (*Clock, *Checkpoint) {
	cfg := DefaultConfig()
	cfg.NumWorkers = workers
	cfg.NumPersonal = scanners
	cfg.CheckTime = checkTime
	clock := NewClock()
	return clock, NewCheckpoint(clock, cfg, fixedSource{uniform: scanTime})
}
