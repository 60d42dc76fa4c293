package sim

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

// ErrSimulationFault wraps a broken scheduling or resource invariant raised
// while a replication ran. It indicates a modeling bug.
var ErrSimulationFault = errors.New("simulation fault")

// ReplicationResult is the outcome of one seeded run of the checkpoint model.
// It is read-only once returned.
type ReplicationResult struct {
	Seed       int64
	NumWorkers int
	Arrivals   int // passengers spawned, finished or not
	Completed  int // passengers that finished scanning

	MeanIDWait       float64
	MeanPersonalWait float64
	MeanTotalWait    float64
	P95TotalWait     float64

	Waits WaitTimes
}

// ReplicationOption customizes a single replication.
type ReplicationOption func(*replicationOptions)

type replicationOptions struct {
	tracer *trace.Recorder
	hooks  []DeliveryHook
}

// WithTracer records the replication's lifecycle into r.
func WithTracer(r *trace.Recorder) ReplicationOption {
	return func(o *replicationOptions) { o.tracer = r }
}

// WithDeliveryHook observes every event the replication's clock delivers.
func WithDeliveryHook(h DeliveryHook) ReplicationOption {
	return func(o *replicationOptions) { o.hooks = append(o.hooks, h) }
}

// Replication is a fully wired, not yet run, model instance: its own clock,
// checkpoint, random streams and arrival generator.
type Replication struct {
	Seed      int64
	Clock     *Clock
	Model     *Checkpoint
	Arrivals  *ArrivalGenerator
	RNG       *PartitionedRNG
	horizon   float64
	completed bool
}

// NewReplication validates cfg and wires a fresh model seeded with seed.
// No event is scheduled when cfg is invalid.
func NewReplication(cfg Config, seed int64, opts ...ReplicationOption) (*Replication, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o replicationOptions
	for _, opt := range opts {
		opt(&o)
	}

	rng := NewPartitionedRNG(NewSimulationKey(seed))
	clock := NewClock()
	for _, h := range o.hooks {
		clock.AddHook(h)
	}
	model := NewCheckpoint(clock, cfg, rng.ForSubsystem(SubsystemScan))
	model.SetTracer(o.tracer)

	initial := 0
	if cfg.InitialBusy {
		initial = cfg.NumWorkers
	}
	gen := NewArrivalGenerator(model, rng.ForSubsystem(SubsystemArrivals), cfg.PassInter, initial)

	return &Replication{
		Seed:     seed,
		Clock:    clock,
		Model:    model,
		Arrivals: gen,
		RNG:      rng,
		horizon:  cfg.SimTime,
	}, nil
}

// Run starts the arrival generator and drives the clock to the horizon.
// It returns a nil result when no passenger completed both stages.
// An invariant violation aborts the run and is returned wrapped in
// ErrSimulationFault. A Replication runs at most once.
func (r *Replication) Run() (res *ReplicationResult, err error) {
	if r.completed {
		return nil, fmt.Errorf("%w: replication seed=%d already ran", ErrSimulationFault, r.Seed)
	}
	r.completed = true

	defer func() {
		if v := recover(); v != nil {
			logrus.Errorf("replication seed=%d aborted at t=%.4f: %v\n%s", r.Seed, r.Clock.Now(), v, debug.Stack())
			res, err = nil, fmt.Errorf("%w: seed=%d at t=%v: %v", ErrSimulationFault, r.Seed, r.Clock.Now(), v)
		}
	}()

	r.Arrivals.Start()
	r.Clock.RunUntil(r.horizon)

	waits := r.Model.Waits()
	logrus.Debugf("replication seed=%d: %d arrivals, %d completed, %d events delivered",
		r.Seed, r.Arrivals.Spawned(), waits.Len(), r.Clock.Delivered())
	if waits.Len() == 0 {
		return nil, nil
	}
	return &ReplicationResult{
		Seed:             r.Seed,
		NumWorkers:       r.Model.IDCheck.Capacity(),
		Arrivals:         r.Arrivals.Spawned(),
		Completed:        waits.Len(),
		MeanIDWait:       CalculateMean(waits.ID),
		MeanPersonalWait: CalculateMean(waits.Personal),
		MeanTotalWait:    CalculateMean(waits.Total),
		P95TotalWait:     CalculatePercentile(waits.Total, 0.95),
		Waits:            waits,
	}, nil
}

// RunReplication runs one replication of cfg seeded with seed.
// It fails with ErrInvalidConfig before any simulation when cfg is invalid,
// returns (nil, nil) when no passenger completed both stages, and wraps
// ErrSimulationFault when the run broke an invariant.
func RunReplication(cfg Config, seed int64, opts ...ReplicationOption) (*ReplicationResult, error) {
	rep, err := NewReplication(cfg, seed, opts...)
	if err != nil {
		return nil, err
	}
	return rep.Run()
}
