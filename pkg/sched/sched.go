// Package sched provides the cooperative tick scheduler used to defer work
// one update cycle.
//
// The list engine schedules enter-transition state flips here so that a
// freshly attached node is observed in its pre-transition state for one
// tick before the "shown" state lands. There is no cancellation: a deferred
// task must itself check whether its target is still attached when it runs.
//
// A Scheduler is goroutine-confined. Defer and Flush must be called from the
// single update goroutine that also mutates the node tree.
package sched

// Scheduler is a FIFO queue of deferred tasks drained once per tick.
type Scheduler struct {
	queue []func()
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Defer enqueues fn to run on the next Flush. A task deferred from within
// a running task lands on the following tick, not the current one.
func (s *Scheduler) Defer(fn func()) {
	if fn == nil {
		return
	}
	s.queue = append(s.queue, fn)
}

// Flush runs every task that was queued before this call, in order, and
// returns the number of tasks run. Tasks deferred during the flush stay
// queued for the next tick.
func (s *Scheduler) Flush() int {
	tasks := s.queue
	s.queue = nil
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}
