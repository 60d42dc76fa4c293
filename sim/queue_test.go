package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitQueue_FIFO(t *testing.T) {
	var wq WaitQueue
	a, b, c := newPassenger(0, nil), newPassenger(1, nil), newPassenger(2, nil)

	wq.Enqueue(a)
	wq.Enqueue(b)
	wq.Enqueue(c)

	assert.Equal(t, 3, wq.Len())
	assert.Same(t, a, wq.Peek())
	assert.Same(t, a, wq.Dequeue())
	assert.Same(t, b, wq.Dequeue())
	assert.Same(t, c, wq.Dequeue())
	assert.Nil(t, wq.Dequeue())
	assert.Nil(t, wq.Peek())
	assert.Equal(t, 0, wq.Len())
}

func TestWaitQueue_String(t *testing.T) {
	var wq WaitQueue
	wq.Enqueue(newPassenger(4, nil))
	wq.Enqueue(newPassenger(9, nil))

	assert.Equal(t, "[Passenger 4, Passenger 9]", wq.String())

	var empty WaitQueue
	assert.Equal(t, "[]", empty.String())
}

func TestWaitQueue_EnqueueNilPanics(t *testing.T) {
	var wq WaitQueue
	assert.Panics(t, func() { wq.Enqueue(nil) })
}
