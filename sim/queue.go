// Implements the WaitQueue, which holds the processes blocked on a Resource.
// Processes are enqueued when they request a unit while all units are in use.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of suspended processes waiting for a Resource unit.
type WaitQueue struct {
	queue []Continuation
}

// Enqueue adds a process to the back of the wait queue.
func (wq *WaitQueue) Enqueue(c Continuation) {
	if c == nil {
		panic("Enqueue: continuation must not be nil")
	}
	wq.queue = append(wq.queue, c)
}

// String lists the waiting processes from head to tail.
func (wq *WaitQueue) String() string {
	names := make([]string, len(wq.queue))
	for i, c := range wq.queue {
		names[i] = fmt.Sprint(c)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Len returns the number of waiting processes.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() Continuation {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() Continuation {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
