package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Resource is a capacity-limited server with a FIFO wait queue.
//
// Invariant: 0 <= InUse() <= Capacity(). A unit freed by Release goes straight
// to the head of the wait queue, so no unit idles while processes wait.
// Grants always resume the process through a zero-delay Clock event.
type Resource struct {
	Name     string
	clock    *Clock
	capacity int
	inUse    int
	waitQ    WaitQueue
	grants   uint64
}

// NewResource creates a resource with the given number of units.
// Panics if capacity is not positive.
func NewResource(clock *Clock, name string, capacity int) *Resource {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewResource(%s): capacity must be positive, got %d", name, capacity))
	}
	return &Resource{Name: name, clock: clock, capacity: capacity}
}

// Capacity returns the number of units.
func (r *Resource) Capacity() int { return r.capacity }

// InUse returns the number of units currently granted.
func (r *Resource) InUse() int { return r.inUse }

// QueueLen returns the number of processes waiting for a unit.
func (r *Resource) QueueLen() int { return r.waitQ.Len() }

// Load is QueueLen()+InUse(), the quantity the shortest-queue policy minimizes.
func (r *Resource) Load() int { return r.waitQ.Len() + r.inUse }

// Grants returns the number of units handed out since creation.
func (r *Resource) Grants() uint64 { return r.grants }

// Acquire requests one unit for proc. If a unit is free it is taken now and
// proc resumes in the same instant; otherwise proc joins the tail of the queue.
func (r *Resource) Acquire(proc Continuation) {
	if r.inUse < r.capacity {
		r.grant(proc)
		return
	}
	r.waitQ.Enqueue(proc)
	logrus.Debugf("[t=%.4f] %s: queued, waiting %s", r.clock.Now(), r.Name, &r.waitQ)
}

// Release returns one unit and hands it to the head of the queue, if any.
// Releasing an idle resource panics.
func (r *Resource) Release() {
	if r.inUse == 0 {
		panic(fmt.Sprintf("Release(%s): no unit in use", r.Name))
	}
	r.inUse--
	if head := r.waitQ.Dequeue(); head != nil {
		r.grant(head)
	}
}

func (r *Resource) grant(proc Continuation) {
	r.inUse++
	r.grants++
	logrus.Debugf("[t=%.4f] %s: granted (in_use=%d/%d)", r.clock.Now(), r.Name, r.inUse, r.capacity)
	r.clock.Schedule(0, proc)
}
