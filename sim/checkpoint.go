package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

// WaitTimes holds per-passenger waits in completion order.
// Index i of each slice refers to the same passenger.
type WaitTimes struct {
	ID       []float64
	Personal []float64
	Total    []float64
}

// Len returns the number of completed passengers.
func (w WaitTimes) Len() int { return len(w.Total) }

// Checkpoint is the two-stage security checkpoint: one shared ID-check pool
// followed by independent single-unit scanners.
// It is owned by exactly one replication.
type Checkpoint struct {
	IDCheck  *Resource
	Scanners []*Resource

	clock       *Clock
	scanRNG     RandomSource
	checkTime   float64
	personalMin float64
	personalMax float64

	waits  WaitTimes
	loads  []int // scratch for scanner choice tracing
	tracer *trace.Recorder
}

// NewCheckpoint builds the model on clock. cfg must already be validated.
func NewCheckpoint(clock *Clock, cfg Config, scanRNG RandomSource) *Checkpoint {
	m := &Checkpoint{
		IDCheck:     NewResource(clock, "id-check", cfg.NumWorkers),
		Scanners:    make([]*Resource, cfg.NumPersonal),
		clock:       clock,
		scanRNG:     scanRNG,
		checkTime:   cfg.CheckTime,
		personalMin: cfg.PersonalMin,
		personalMax: cfg.PersonalMax,
		loads:       make([]int, cfg.NumPersonal),
	}
	for i := range m.Scanners {
		m.Scanners[i] = NewResource(clock, fmt.Sprintf("scanner-%d", i), 1)
	}
	return m
}

// SetTracer attaches a lifecycle recorder. nil disables tracing.
func (m *Checkpoint) SetTracer(r *trace.Recorder) {
	m.tracer = r
}

// Clock returns the clock the model runs on.
func (m *Checkpoint) Clock() *Clock { return m.clock }

// SelectScanner returns the index of the scanner with the smallest
// queue length plus units in use. Ties go to the lowest index.
func (m *Checkpoint) SelectScanner(passengerID int) int {
	best, bestLoad := 0, m.Scanners[0].Load()
	m.loads[0] = bestLoad
	for i := 1; i < len(m.Scanners); i++ {
		load := m.Scanners[i].Load()
		m.loads[i] = load
		if load < bestLoad {
			best, bestLoad = i, load
		}
	}
	logrus.Debugf("[t=%.4f] Passenger %d: scanner %d chosen, loads %v", m.clock.Now(), passengerID, best, m.loads)
	m.tracer.RecordChoice(trace.ScannerChoiceRecord{
		PassengerID: passengerID,
		Clock:       m.clock.Now(),
		Chosen:      best,
		Loads:       m.loads,
	})
	return best
}

// Waits returns the waits recorded so far. The slices are shared with the
// model and must not be modified.
func (m *Checkpoint) Waits() WaitTimes {
	return m.waits
}

// Completed returns the number of passengers that finished scanning.
func (m *Checkpoint) Completed() int {
	return m.waits.Len()
}

func (m *Checkpoint) record(p *Passenger) {
	m.waits.ID = append(m.waits.ID, p.IDWait)
	m.waits.Personal = append(m.waits.Personal, p.PersonalWait)
	m.waits.Total = append(m.waits.Total, p.TotalWait)
}
