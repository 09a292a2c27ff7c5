// internal/sched/scheduler.go

package sched

import "fmt"

// Counters are accumulated by one simulation run.
type Counters struct {
	ContextSwitches int // dispatches
	IdleTime        int // ticks with an empty ready queue
	BusyTime        int // ticks spent running processes
}

// Result is everything one run produces.
type Result struct {
	Completed []*Process // completion order
	Counters  Counters
	Elapsed   int // clock at the last completion
}

// Scheduler runs the round-robin event loop under a pluggable policy.
// A Scheduler holds no per-run state and may be reused, even concurrently,
// as long as the observer tolerates that.
type Scheduler struct {
	policy  Policy
	observe func(StatusEvent)
}

// New creates a Scheduler for the given policy.
func New(p Policy) *Scheduler {
	return &Scheduler{policy: p}
}

// Observe registers a callback for status events. Must be called before Schedule().
func (s *Scheduler) Observe(fn func(StatusEvent)) { s.observe = fn }

// Policy returns the policy the scheduler dispatches with.
func (s *Scheduler) Policy() Policy { return s.policy }

// Name returns the policy label.
func (s *Scheduler) Name() string { return s.policy.Name() }

// run is the state owned by a single Schedule call.
type run struct {
	clock     TickClock
	pending   *arrivals
	ready     *readyQueue
	completed []*Process
	switches  int
}

// Schedule simulates the workload to completion. Fresh process records
// are built from descs, which are never modified.
func (s *Scheduler) Schedule(descs []Descriptor) (Result, error) {
	if err := ValidateWorkload(descs); err != nil {
		return Result{}, err
	}

	procs := make([]*Process, len(descs))
	for i, d := range descs {
		procs[i] = NewProcess(d)
	}
	r := &run{
		pending:   newArrivals(procs),
		ready:     newReadyQueue(),
		completed: make([]*Process, 0, len(procs)),
	}

	for len(r.completed) < len(procs) {
		// 1) admit everything that has arrived by now
		s.admit(r)

		// 2) idle case: nothing ready, burn one tick
		if r.ready.Empty() {
			if r.pending.Len() == 0 {
				panic(fmt.Sprintf("sched: %d of %d processes unfinished with nothing pending", len(procs)-len(r.completed), len(procs)))
			}
			r.clock.Idle()
			s.emit(StatusEvent{Tick: r.clock.Now(), Kind: StatusIdle})
			continue
		}

		// 3) pick the head; the policy sees the queue as it was before the pop
		snapshot := r.ready.Snapshot()
		p := r.ready.PopFront()
		if p.Remaining <= 0 {
			panic(fmt.Sprintf("sched: process %d dispatched with %d remaining", p.ID, p.Remaining))
		}
		d := s.policy.Decide(snapshot, p)

		p.markStarted(r.clock.Now())
		s.emit(StatusEvent{
			Tick:      r.clock.Now(),
			Kind:      StatusDispatch,
			ProcessID: p.ID,
			Slice:     d.Slice,
			Remaining: p.Remaining,
			Runs:      p.Runs,
			Quantum:   d.Quantum,
			Class:     d.Class,
			Queue:     s.queueIDs(r),
		})

		// 4) run the slice
		r.clock.Run(d.Slice)
		p.run(d.Slice)
		r.switches++

		// 5) arrivals during the slice queue up ahead of the preempted process
		s.admit(r)

		// 6) finish or requeue
		if p.Remaining == 0 {
			p.markCompleted(r.clock.Now())
			r.completed = append(r.completed, p)
			s.emit(StatusEvent{
				Tick:      r.clock.Now(),
				Kind:      StatusFinish,
				ProcessID: p.ID,
				Slice:     d.Slice,
				Runs:      p.Runs,
				Quantum:   d.Quantum,
				Class:     d.Class,
				Queue:     s.queueIDs(r),
			})
			continue
		}

		if d.Requeue == Head {
			r.ready.PushFront(p)
		} else {
			r.ready.PushBack(p)
		}
		s.emit(StatusEvent{
			Tick:      r.clock.Now(),
			Kind:      StatusPreempt,
			ProcessID: p.ID,
			Slice:     d.Slice,
			Remaining: p.Remaining,
			Runs:      p.Runs,
			Quantum:   d.Quantum,
			Class:     d.Class,
			Position:  d.Requeue,
			Queue:     s.queueIDs(r),
		})
	}

	return Result{
		Completed: r.completed,
		Counters: Counters{
			ContextSwitches: r.switches,
			IdleTime:        r.clock.IdleTicks(),
			BusyTime:        r.clock.BusyTicks(),
		},
		Elapsed: r.clock.Now(),
	}, nil
}

// admit moves due arrivals to the tail of the ready queue.
func (s *Scheduler) admit(r *run) {
	for _, p := range r.pending.popDue(r.clock.Now()) {
		r.ready.PushBack(p)
		s.emit(StatusEvent{
			Tick:      r.clock.Now(),
			Kind:      StatusEnqueue,
			ProcessID: p.ID,
			Remaining: p.Remaining,
			Position:  Tail,
			Queue:     s.queueIDs(r),
		})
	}
}

func (s *Scheduler) emit(ev StatusEvent) {
	if s.observe != nil {
		s.observe(ev)
	}
}

// queueIDs copies the queue order only when someone is listening.
func (s *Scheduler) queueIDs(r *run) []ProcessID {
	if s.observe == nil {
		return nil
	}
	return r.ready.IDs()
}
