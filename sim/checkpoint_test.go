package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

func occupy(r *Resource, n int) {
	for i := 0; i < n; i++ {
		r.Acquire(ContinuationFunc(func(float64) {}))
	}
}

func TestNewCheckpoint_BuildsResources(t *testing.T) {
	_, m := newTestCheckpoint(5, 4, 0.75, 0.5)

	assert.Equal(t, 5, m.IDCheck.Capacity())
	require.Len(t, m.Scanners, 4)
	for i, s := range m.Scanners {
		assert.Equal(t, 1, s.Capacity(), "scanner %d", i)
	}
	assert.Equal(t, 0, m.Completed())
}

func TestCheckpoint_SelectScanner(t *testing.T) {
	tests := []struct {
		name  string
		loads []int
		want  int
	}{
		{"all idle picks first", []int{0, 0, 0, 0}, 0},
		{"unique minimum", []int{2, 3, 1, 2}, 2},
		{"tie picks lowest index", []int{3, 1, 2, 1}, 1},
		{"last is shortest", []int{2, 2, 2, 0}, 3},
		{"all equal busy", []int{2, 2, 2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newTestCheckpoint(1, len(tt.loads), 0.75, 0.5)
			for i, l := range tt.loads {
				occupy(m.Scanners[i], l)
			}
			assert.Equal(t, tt.want, m.SelectScanner(0))
		})
	}
}

func TestCheckpoint_SelectScanner_CountsQueueAndInUse(t *testing.T) {
	// scanner 0: 1 in use + 1 queued (load 2); scanner 1: 1 in use (load 1)
	_, m := newTestCheckpoint(1, 2, 0.75, 0.5)
	occupy(m.Scanners[0], 2)
	occupy(m.Scanners[1], 1)

	assert.Equal(t, 1, m.SelectScanner(0))
}

func TestCheckpoint_SelectScanner_RecordsChoice(t *testing.T) {
	_, m := newTestCheckpoint(1, 3, 0.75, 0.5)
	rec := trace.NewRecorder(trace.TraceLevelChoices)
	m.SetTracer(rec)
	occupy(m.Scanners[0], 1)

	m.SelectScanner(12)

	require.Len(t, rec.Choices, 1)
	assert.Equal(t, 12, rec.Choices[0].PassengerID)
	assert.Equal(t, 1, rec.Choices[0].Chosen)
	assert.Equal(t, []int{1, 0, 0}, rec.Choices[0].Loads)
}
