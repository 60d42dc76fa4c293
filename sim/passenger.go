package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

// PassengerState is a stage of the passenger lifecycle.
type PassengerState int

const (
	StateArrived PassengerState = iota
	StateWaitingID
	StateInIDCheck
	StateWaitingScan
	StateInScan
	StateDone
)

var passengerStateNames = [...]string{
	StateArrived:     "ARRIVED",
	StateWaitingID:   "WAITING_ID",
	StateInIDCheck:   "IN_ID_CHECK",
	StateWaitingScan: "WAITING_SCAN",
	StateInScan:      "IN_SCAN",
	StateDone:        "DONE",
}

func (s PassengerState) String() string {
	if s < 0 || int(s) >= len(passengerStateNames) {
		return fmt.Sprintf("PassengerState(%d)", int(s))
	}
	return passengerStateNames[s]
}

// Passenger is one traveller moving through the checkpoint:
// ARRIVED → WAITING_ID → IN_ID_CHECK → WAITING_SCAN → IN_SCAN → DONE.
//
// Each Resume is one delivered event: a resource grant or an expired timeout.
// The passenger mutates only itself and the resources it holds; its waits are
// handed to the Checkpoint once it reaches DONE.
type Passenger struct {
	ID    int
	State PassengerState

	ArrivalTime float64
	IDStart     float64
	IDEnd       float64
	ScanArrival float64 // arrival at the scanner area, equals IDEnd
	ScanStart   float64
	ScanEnd     float64
	Scanner     int // index of the chosen scanner, -1 before the choice

	IDWait       float64
	PersonalWait float64
	TotalWait    float64

	model   *Checkpoint
	scanner *Resource
}

func newPassenger(id int, model *Checkpoint) *Passenger {
	return &Passenger{ID: id, State: StateArrived, Scanner: -1, model: model}
}

func (p *Passenger) String() string {
	return fmt.Sprintf("Passenger %d", p.ID)
}

// Resume advances the passenger by one transition.
func (p *Passenger) Resume(now float64) {
	m := p.model
	switch p.State {
	case StateArrived:
		p.ArrivalTime = now
		p.transition(StateWaitingID, now)
		m.IDCheck.Acquire(p)

	case StateWaitingID:
		p.IDStart = now
		p.IDWait = now - p.ArrivalTime
		p.transition(StateInIDCheck, now)
		m.clock.Schedule(m.checkTime, p)

	case StateInIDCheck:
		p.IDEnd = now
		m.IDCheck.Release()
		p.ScanArrival = now
		p.Scanner = m.SelectScanner(p.ID)
		p.scanner = m.Scanners[p.Scanner]
		p.transition(StateWaitingScan, now)
		p.scanner.Acquire(p)

	case StateWaitingScan:
		p.ScanStart = now
		p.PersonalWait = now - p.ScanArrival
		scanTime := m.scanRNG.Uniform(m.personalMin, m.personalMax)
		p.transition(StateInScan, now)
		m.clock.Schedule(scanTime, p)

	case StateInScan:
		p.ScanEnd = now
		p.scanner.Release()
		p.TotalWait = p.IDWait + p.PersonalWait
		p.transition(StateDone, now)
		m.record(p)

	default:
		panic(fmt.Sprintf("%s resumed in terminal state %s at t=%v", p, p.State, now))
	}
}

func (p *Passenger) transition(to PassengerState, now float64) {
	logrus.Debugf("[t=%.4f] %s: %s -> %s", now, p, p.State, to)
	p.model.tracer.RecordTransition(trace.TransitionRecord{
		PassengerID: p.ID,
		Clock:       now,
		From:        p.State.String(),
		To:          to.String(),
	})
	p.State = to
}
