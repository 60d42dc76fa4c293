package sim

import "github.com/sirupsen/logrus"

// ArrivalGenerator spawns passengers into a Checkpoint with exponentially
// distributed interarrival times. It never stops on its own: the pending
// timeout past the horizon is simply never delivered.
type ArrivalGenerator struct {
	model        *Checkpoint
	rng          RandomSource
	passInter    float64
	initialBatch int
	nextID       int
	started      bool
}

// NewArrivalGenerator creates a generator. initialBatch passengers are
// spawned at start before any random arrival.
func NewArrivalGenerator(model *Checkpoint, rng RandomSource, passInter float64, initialBatch int) *ArrivalGenerator {
	return &ArrivalGenerator{
		model:        model,
		rng:          rng,
		passInter:    passInter,
		initialBatch: initialBatch,
	}
}

// Start spawns the initial batch and schedules the first random arrival.
// Calling Start twice panics.
func (g *ArrivalGenerator) Start() {
	if g.started {
		panic("ArrivalGenerator: Start called twice")
	}
	g.started = true
	for range g.initialBatch {
		g.spawn()
	}
	g.scheduleNext()
}

// Resume fires when an interarrival timeout expires.
func (g *ArrivalGenerator) Resume(now float64) {
	p := g.spawn()
	logrus.Debugf("[t=%.4f] %s arrives", now, p)
	g.scheduleNext()
}

// Spawned returns the number of passengers created so far.
func (g *ArrivalGenerator) Spawned() int {
	return g.nextID
}

func (g *ArrivalGenerator) spawn() *Passenger {
	p := newPassenger(g.nextID, g.model)
	g.nextID++
	g.model.clock.Schedule(0, p)
	return p
}

func (g *ArrivalGenerator) scheduleNext() {
	g.model.clock.Schedule(g.rng.Exponential(g.passInter), g)
}
