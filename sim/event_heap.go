package sim

import "container/heap"

// event is a pending continuation with its fire-time.
type event struct {
	time float64
	seq  uint64 // scheduling order, deterministic tie-breaker
	cont Continuation
}

// eventHeap implements heap.Interface with deterministic ordering.
// Order by: fire-time → scheduling sequence.
type eventHeap struct {
	events []*event
}

func newEventHeap() *eventHeap {
	h := &eventHeap{events: make([]*event, 0)}
	heap.Init(h)
	return h
}

func (h *eventHeap) Len() int { return len(h.events) }

func (h *eventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.time != ej.time {
		return ei.time < ej.time
	}
	return ei.seq < ej.seq
}

func (h *eventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *eventHeap) Push(x any) {
	h.events = append(h.events, x.(*event))
}

func (h *eventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.events = old[0 : n-1]
	return item
}

func (h *eventHeap) schedule(e *event) {
	heap.Push(h, e)
}

// popNext removes and returns the earliest event, or nil when empty.
func (h *eventHeap) popNext() *event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(*event)
}

// peek returns the earliest event without removing it.
func (h *eventHeap) peek() *event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}
