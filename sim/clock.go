package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Continuation is what a suspended process resumes with when its pending
// event is delivered. The Clock treats it as opaque.
type Continuation interface {
	Resume(now float64)
}

// ContinuationFunc adapts a plain function to a Continuation.
type ContinuationFunc func(now float64)

// Resume calls f(now).
func (f ContinuationFunc) Resume(now float64) { f(now) }

// DeliveryHook observes every delivered event after its continuation ran.
type DeliveryHook func(now float64, cont Continuation)

// Clock holds the simulated time and the time-ordered pending-event set.
//
// Events at equal fire-times are delivered in the order they were scheduled.
// Time never moves backwards.
//
// Thread-safety: NOT thread-safe. A Clock belongs to one replication and is
// driven by a single delivery loop.
type Clock struct {
	now       float64
	seq       uint64
	pending   *eventHeap
	delivered uint64
	hooks     []DeliveryHook
}

// NewClock returns a clock at time zero with no pending events.
func NewClock() *Clock {
	return &Clock{pending: newEventHeap()}
}

// Now returns the current simulated time.
func (c *Clock) Now() float64 {
	return c.now
}

// Pending returns the number of events not yet delivered.
func (c *Clock) Pending() int {
	return c.pending.Len()
}

// Delivered returns the number of events delivered so far.
func (c *Clock) Delivered() uint64 {
	return c.delivered
}

// AddHook registers a hook invoked after each delivery.
func (c *Clock) AddHook(h DeliveryHook) {
	c.hooks = append(c.hooks, h)
}

// Schedule inserts cont to fire at Now()+delay.
// A negative or NaN delay is a modeling bug and panics.
func (c *Clock) Schedule(delay float64, cont Continuation) {
	if math.IsNaN(delay) || delay < 0 {
		panic(fmt.Sprintf("Schedule: invalid delay %v at t=%v", delay, c.now))
	}
	if cont == nil {
		panic("Schedule: cont must not be nil")
	}
	c.seq++
	c.pending.schedule(&event{time: c.now + delay, seq: c.seq, cont: cont})
}

// RunUntil delivers pending events in (time, sequence) order until the next
// event would fire after horizon or none remain. Events scheduled during a
// delivery are handled by the same loop. On return Now() equals horizon.
func (c *Clock) RunUntil(horizon float64) {
	if math.IsNaN(horizon) || horizon < c.now {
		panic(fmt.Sprintf("RunUntil: horizon %v before current time %v", horizon, c.now))
	}
	for {
		next := c.pending.peek()
		if next == nil || next.time > horizon {
			break
		}
		ev := c.pending.popNext()
		if ev.time < c.now {
			panic(fmt.Sprintf("RunUntil: event at %v precedes clock %v", ev.time, c.now))
		}
		c.now = ev.time
		logrus.Debugf("[t=%.4f] delivering %T", c.now, ev.cont)
		ev.cont.Resume(c.now)
		c.delivered++
		for _, h := range c.hooks {
			h(c.now, ev.cont)
		}
	}
	c.now = horizon
	logrus.Debugf("[t=%.4f] run ended, %d events abandoned", c.now, c.pending.Len())
}
