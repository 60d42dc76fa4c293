package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

func TestRunReplication_ZeroWorkers_ConfigErrorBeforeScheduling(t *testing.T) {
	cfg := testConfig()
	cfg.NumWorkers = 0

	rep, err := NewReplication(cfg, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Nil(t, rep)

	res, err := RunReplication(cfg, 1)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestRunReplication_ZeroHorizon_NoResult(t *testing.T) {
	cfg := testConfig()
	cfg.SimTime = 0

	res, err := RunReplication(cfg, 28)

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRunReplication_SinglePassengerScenario(t *testing.T) {
	// GIVEN one worker, a 1-minute check and very sparse random arrivals
	cfg := testConfig()
	cfg.NumWorkers = 1
	cfg.CheckTime = 1.0
	cfg.PassInter = 100.0
	cfg.SimTime = 10
	cfg.InitialBusy = true
	rec := trace.NewRecorder(trace.TraceLevelFull)

	// WHEN one replication runs
	rep, err := NewReplication(cfg, 28, WithTracer(rec))
	require.NoError(t, err)
	res, err := rep.Run()
	require.NoError(t, err)

	// THEN exactly one initial passenger is spawned at t=0 and checked at once
	transitions := rec.ForPassenger(0)
	require.GreaterOrEqual(t, len(transitions), 3)
	assert.Equal(t, "WAITING_ID", transitions[0].To)
	assert.Equal(t, 0.0, transitions[0].Clock)
	assert.Equal(t, "IN_ID_CHECK", transitions[1].To)
	assert.Equal(t, 0.0, transitions[1].Clock, "id_wait = 0")
	assert.Equal(t, "WAITING_SCAN", transitions[2].To)
	assert.Equal(t, 1.0, transitions[2].Clock, "ID check occupies 1.0 minute")

	require.NotNil(t, res)
	assert.Equal(t, 0.0, res.Waits.ID[0])
	assert.GreaterOrEqual(t, res.Arrivals, 1)
}

func TestRunReplication_TwoPassengersTwoWorkers_NoIDWait(t *testing.T) {
	cfg := testConfig()
	cfg.NumWorkers = 2
	cfg.NumPersonal = 2
	cfg.PassInter = 1000
	cfg.SimTime = 10
	rec := trace.NewRecorder(trace.TraceLevelFull)

	res, err := RunReplication(cfg, 28, WithTracer(rec))
	require.NoError(t, err)
	require.NotNil(t, res)

	// both initial passengers start their ID check at t=0
	for _, id := range []int{0, 1} {
		tr := rec.ForPassenger(id)
		require.GreaterOrEqual(t, len(tr), 2, "passenger %d", id)
		assert.Equal(t, "IN_ID_CHECK", tr[1].To)
		assert.Equal(t, 0.0, tr[1].Clock, "passenger %d id_wait", id)
	}

	// they finish together and split across the two idle scanners
	require.GreaterOrEqual(t, len(rec.Choices), 2)
	assert.Equal(t, 0, rec.Choices[0].Chosen)
	assert.Equal(t, []int{0, 0}, rec.Choices[0].Loads)
	assert.Equal(t, 1, rec.Choices[1].Chosen)
	assert.Equal(t, []int{1, 0}, rec.Choices[1].Loads)
}

func TestRunReplication_TotalIsSumOfStages(t *testing.T) {
	res, err := RunReplication(testConfig(), 28)
	require.NoError(t, err)
	require.NotNil(t, res)

	w := res.Waits
	require.Equal(t, len(w.ID), len(w.Total))
	require.Equal(t, len(w.Personal), len(w.Total))
	for i := range w.Total {
		if w.Total[i] != w.ID[i]+w.Personal[i] {
			t.Fatalf("passenger %d: total %v != id %v + personal %v", i, w.Total[i], w.ID[i], w.Personal[i])
		}
	}
	assert.Equal(t, res.Completed, w.Len())
	assert.LessOrEqual(t, res.Completed, res.Arrivals)
}

func TestRunReplication_SameSeed_IdenticalWaits(t *testing.T) {
	cfg := testConfig()

	a, err := RunReplication(cfg, 1234)
	require.NoError(t, err)
	b, err := RunReplication(cfg, 1234)
	require.NoError(t, err)

	require.NotNil(t, a)
	assert.Equal(t, a.Waits, b.Waits)
	assert.Equal(t, a, b)
}

func TestRunReplication_DifferentSeeds_Differ(t *testing.T) {
	cfg := testConfig()

	a, err := RunReplication(cfg, 1)
	require.NoError(t, err)
	b, err := RunReplication(cfg, 2)
	require.NoError(t, err)

	assert.NotEqual(t, a.Waits.Total, b.Waits.Total)
}

func TestRunReplication_ResourceInvariantsHold(t *testing.T) {
	cfg := testConfig()
	cfg.PassInter = 0.1
	var rep *Replication
	violations := 0
	checkResources := func(float64, Continuation) {
		resources := append([]*Resource{rep.Model.IDCheck}, rep.Model.Scanners...)
		for _, r := range resources {
			if r.InUse() < 0 || r.InUse() > r.Capacity() {
				violations++
			}
			// a waiter with a free unit would mean an idle unit
			if r.QueueLen() > 0 && r.InUse() < r.Capacity() {
				violations++
			}
		}
	}
	rep, err := NewReplication(cfg, 7, WithDeliveryHook(checkResources))
	require.NoError(t, err)

	res, err := rep.Run()
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Zero(t, violations)
}

func TestRunReplication_IDGrantsFollowArrivalOrder(t *testing.T) {
	// GIVEN a saturated ID stage so that queues form
	cfg := testConfig()
	cfg.NumWorkers = 2
	cfg.PassInter = 0.2
	rec := trace.NewRecorder(trace.TraceLevelFull)

	_, err := RunReplication(cfg, 42, WithTracer(rec))
	require.NoError(t, err)

	// THEN passengers start ID checks in the order they joined the queue
	last := -1
	for _, tr := range rec.Transitions {
		if tr.To != "IN_ID_CHECK" {
			continue
		}
		require.Greater(t, tr.PassengerID, last, "FIFO violated at t=%v", tr.Clock)
		last = tr.PassengerID
	}
	assert.Greater(t, last, 0)
}

func TestReplication_Run_InvariantViolationSurfacesAsFault(t *testing.T) {
	rep, err := NewReplication(testConfig(), 3)
	require.NoError(t, err)
	rep.Clock.AddHook(func(now float64, _ Continuation) {
		if now > 1 {
			rep.Clock.Schedule(-1, ContinuationFunc(func(float64) {}))
		}
	})

	res, err := rep.Run()

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrSimulationFault), "got %v", err)
}

func TestReplication_Run_Twice(t *testing.T) {
	rep, err := NewReplication(testConfig(), 3)
	require.NoError(t, err)

	_, err = rep.Run()
	require.NoError(t, err)
	_, err = rep.Run()
	assert.True(t, errors.Is(err, ErrSimulationFault))
}

func TestReplication_InitialBusy_SpawnsOnePerWorker(t *testing.T) {
	tests := []struct {
		name        string
		initialBusy bool
		want        int
	}{
		{"on", true, 5},
		{"off", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.InitialBusy = tt.initialBusy
			cfg.SimTime = 0

			rep, err := NewReplication(cfg, 28)
			require.NoError(t, err)
			res, err := rep.Run()
			require.NoError(t, err)

			assert.Nil(t, res, "nobody finishes at t=0")
			assert.Equal(t, tt.want, rep.Arrivals.Spawned())
			assert.Equal(t, tt.want, rep.Model.IDCheck.InUse())
			assert.Equal(t, 0, rep.Model.IDCheck.QueueLen())
		})
	}
}
