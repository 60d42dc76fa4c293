package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

func TestPassengerState_String(t *testing.T) {
	assert.Equal(t, "ARRIVED", StateArrived.String())
	assert.Equal(t, "IN_SCAN", StateInScan.String())
	assert.Equal(t, "DONE", StateDone.String())
	assert.Equal(t, "PassengerState(42)", PassengerState(42).String())
}

func TestPassenger_SingleJourney(t *testing.T) {
	// GIVEN one idle checker and one idle scanner, check 0.75 and scan 0.6
	clock, m := newTestCheckpoint(1, 1, 0.75, 0.6)
	rec := trace.NewRecorder(trace.TraceLevelFull)
	m.SetTracer(rec)
	p := newPassenger(0, m)

	// WHEN the passenger arrives at t=2
	clock.Schedule(2, p)
	clock.RunUntil(10)

	// THEN it walks every stage without waiting
	assert.Equal(t, StateDone, p.State)
	assert.Equal(t, 2.0, p.ArrivalTime)
	assert.Equal(t, 2.0, p.IDStart)
	assert.Equal(t, 2.75, p.IDEnd)
	assert.Equal(t, 2.75, p.ScanArrival)
	assert.Equal(t, 2.75, p.ScanStart)
	assert.InDelta(t, 3.35, p.ScanEnd, 1e-12)
	assert.Equal(t, 0, p.Scanner)
	assert.Equal(t, 0.0, p.IDWait)
	assert.Equal(t, 0.0, p.PersonalWait)
	assert.Equal(t, 0.0, p.TotalWait)

	// AND the resources are free again
	assert.Equal(t, 0, m.IDCheck.InUse())
	assert.Equal(t, 0, m.Scanners[0].InUse())

	// AND the transitions follow the lifecycle
	var states []string
	for _, tr := range rec.ForPassenger(0) {
		states = append(states, tr.To)
	}
	assert.Equal(t, []string{"WAITING_ID", "IN_ID_CHECK", "WAITING_SCAN", "IN_SCAN", "DONE"}, states)

	// AND the waits were handed to the model
	require.Equal(t, 1, m.Completed())
	assert.Equal(t, []float64{0}, m.Waits().Total)
}

func TestPassenger_WaitsForBusyChecker(t *testing.T) {
	// GIVEN one checker and two passengers arriving together
	clock, m := newTestCheckpoint(1, 1, 0.75, 0.6)
	p0, p1 := newPassenger(0, m), newPassenger(1, m)

	clock.Schedule(0, p0)
	clock.Schedule(0, p1)
	clock.RunUntil(10)

	// THEN the second waits one full check
	assert.Equal(t, 0.0, p0.IDWait)
	assert.Equal(t, 0.75, p1.IDWait)
	// p0 leaves the scanner at 1.35, before p1 reaches it at 1.5
	assert.Equal(t, 0.0, p1.PersonalWait)
	assert.Equal(t, p1.IDWait+p1.PersonalWait, p1.TotalWait)

	w := m.Waits()
	assert.Equal(t, []float64{0, 0.75}, w.ID)
	assert.Equal(t, []float64{0, 0.75}, w.Total)
}

func TestPassenger_WaitsForBusyScanner(t *testing.T) {
	// GIVEN two checkers but one slow scanner
	clock, m := newTestCheckpoint(2, 1, 0.5, 2.0)
	p0, p1 := newPassenger(0, m), newPassenger(1, m)

	clock.Schedule(0, p0)
	clock.Schedule(0, p1)
	clock.RunUntil(10)

	// both finish ID at 0.5; p1 waits for p0's scan to end at 2.5
	assert.Equal(t, 0.0, p1.IDWait)
	assert.Equal(t, 2.0, p1.PersonalWait)
	assert.Equal(t, 2.0, p1.TotalWait)
	assert.Equal(t, 4.5, p1.ScanEnd)
}

func TestPassenger_WaitsRecordedOnlyWhenDone(t *testing.T) {
	clock, m := newTestCheckpoint(1, 1, 0.75, 0.6)
	p := newPassenger(0, m)

	clock.Schedule(0, p)
	clock.RunUntil(1.0) // still scanning

	assert.Equal(t, StateInScan, p.State)
	assert.Equal(t, 0, m.Completed())
}

func TestPassenger_ResumeAfterDonePanics(t *testing.T) {
	_, m := newTestCheckpoint(1, 1, 0.75, 0.6)
	p := newPassenger(0, m)
	p.State = StateDone

	assert.Panics(t, func() { p.Resume(1) })
}
