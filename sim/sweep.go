package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// DeriveSeed returns the seed of one replication. Seeds differ across both
// replicates and staffing levels for levels below 1000 replicates.
func DeriveSeed(base int64, replicate, numWorkers int) int64 {
	return base + int64(replicate) + int64(numWorkers)*1000
}

// LevelResult aggregates the replications of one staffing level.
// A level where no replication produced data is empty: Replications is zero
// and only the Empty and Faults counts are set. It is read-only once returned.
type LevelResult struct {
	NumWorkers   int
	Replications int // replications that contributed
	Empty        int // replications with no completed passenger
	Faults       int // replications aborted by ErrSimulationFault

	MeanIDWait       float64
	MeanPersonalWait float64
	MeanTotalWait    float64
	MeanP95TotalWait float64
	TotalWaitSpread  Dispersion // spread of per-replication mean total wait

	Runs []*ReplicationResult // contributing replications in replicate order
}

// HasData reports whether at least one replication contributed. It is safe
// to call on a nil result.
func (l *LevelResult) HasData() bool {
	return l != nil && l.Replications > 0
}

// RunStaffingLevel runs replicates independent replications of cfg staffed
// with numWorkers and averages their mean waits. opts apply to every
// replication; with cfg.Parallelism > 1 they must be safe for concurrent use.
//
// A faulted replication is counted and skipped, like an empty one. When no
// replication produced data the result is empty (see HasData), never an
// error. It fails with ErrInvalidConfig before any simulation when the
// staffed cfg is invalid.
func RunStaffingLevel(numWorkers, replicates int, cfg Config, opts ...ReplicationOption) (*LevelResult, error) {
	cfg = cfg.WithWorkers(numWorkers)
	cfg.Replicates = replicates
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results, errs := runReplicates(cfg, opts)

	level := &LevelResult{NumWorkers: numWorkers}
	for i, res := range results {
		switch {
		case errs[i] != nil:
			if !errors.Is(errs[i], ErrSimulationFault) {
				return nil, errs[i]
			}
			level.Faults++
		case res == nil:
			level.Empty++
		default:
			level.Runs = append(level.Runs, res)
		}
	}

	if len(level.Runs) == 0 {
		logrus.Warnf("Workers %2d | no completed passengers in replicates (%d empty, %d faulted).",
			numWorkers, level.Empty, level.Faults)
		return level, nil
	}
	if level.Faults > 0 {
		logrus.Warnf("Workers %2d | %d of %d replicates faulted and were skipped", numWorkers, level.Faults, replicates)
	}

	n := len(level.Runs)
	idMeans := make([]float64, n)
	personalMeans := make([]float64, n)
	totalMeans := make([]float64, n)
	p95s := make([]float64, n)
	for i, r := range level.Runs {
		idMeans[i] = r.MeanIDWait
		personalMeans[i] = r.MeanPersonalWait
		totalMeans[i] = r.MeanTotalWait
		p95s[i] = r.P95TotalWait
	}
	level.Replications = n
	level.MeanIDWait = CalculateMean(idMeans)
	level.MeanPersonalWait = CalculateMean(personalMeans)
	level.MeanTotalWait = CalculateMean(totalMeans)
	level.MeanP95TotalWait = CalculateMean(p95s)
	level.TotalWaitSpread = CalculateDispersion(totalMeans)

	logrus.Infof("Workers %2d | ID wait %.2f min | Personal wait %.2f min | Total wait %.2f min",
		numWorkers, level.MeanIDWait, level.MeanPersonalWait, level.MeanTotalWait)
	return level, nil
}

// runReplicates runs cfg.Replicates replications, at most cfg.Parallelism at
// a time. Results are indexed by replicate so the outcome does not depend on
// the degree of parallelism.
func runReplicates(cfg Config, opts []ReplicationOption) ([]*ReplicationResult, []error) {
	results := make([]*ReplicationResult, cfg.Replicates)
	errs := make([]error, cfg.Replicates)

	if cfg.Parallelism <= 1 {
		for rep := range cfg.Replicates {
			results[rep], errs[rep] = RunReplication(cfg, DeriveSeed(cfg.BaseSeed, rep, cfg.NumWorkers), opts...)
		}
		return results, errs
	}

	sem := make(chan struct{}, cfg.Parallelism)
	var wg sync.WaitGroup
	for rep := range cfg.Replicates {
		wg.Add(1)
		sem <- struct{}{}
		go func(rep int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[rep], errs[rep] = RunReplication(cfg, DeriveSeed(cfg.BaseSeed, rep, cfg.NumWorkers), opts...)
		}(rep)
	}
	wg.Wait()
	return results, errs
}

// WorkerRange is an inclusive range of staffing levels.
type WorkerRange struct {
	Min int
	Max int
}

// DefaultWorkerRange sweeps 1 through 40 ID workers.
func DefaultWorkerRange() WorkerRange {
	return WorkerRange{Min: 1, Max: 40}
}

// Validate rejects empty ranges and non-positive staffing levels.
func (r WorkerRange) Validate() error {
	if r.Min <= 0 {
		return fmt.Errorf("%w: minimum workers must be > 0, got %d", ErrInvalidConfig, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%w: maximum workers %d below minimum %d", ErrInvalidConfig, r.Max, r.Min)
	}
	return nil
}

// Levels returns the staffing levels in ascending order.
func (r WorkerRange) Levels() []int {
	if r.Max < r.Min {
		return nil
	}
	levels := make([]int, 0, r.Max-r.Min+1)
	for n := r.Min; n <= r.Max; n++ {
		levels = append(levels, n)
	}
	return levels
}

// Sweep runs RunStaffingLevel for every level of wr in ascending order and
// hands each summary to sink as soon as it is known, then the full sequence.
// Levels without data, faulted ones included, are reported as gaps, not
// errors. Configuration errors abort before any level runs. Cancelling ctx
// stops the sweep between levels and returns the summaries gathered so far
// with ctx.Err(). sink may be nil. opts are passed to every replication.
func Sweep(ctx context.Context, wr WorkerRange, cfg Config, sink Reporter, opts ...ReplicationOption) ([]LevelSummary, error) {
	if err := wr.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.WithWorkers(wr.Min).Validate(); err != nil {
		return nil, err
	}

	summaries := make([]LevelSummary, 0, wr.Max-wr.Min+1)
	for _, n := range wr.Levels() {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		res, err := RunStaffingLevel(n, cfg.Replicates, cfg, opts...)
		if err != nil {
			return summaries, err
		}
		s := NewLevelSummary(n, res)
		summaries = append(summaries, s)
		if sink != nil {
			if err := sink.ReportLevel(s); err != nil {
				return summaries, fmt.Errorf("reporting level %d: %w", n, err)
			}
		}
	}

	if sink != nil {
		if err := sink.ReportSweep(summaries); err != nil {
			return summaries, fmt.Errorf("reporting sweep: %w", err)
		}
	}
	return summaries, nil
}
