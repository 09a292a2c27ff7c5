package sched

import "fmt"

// ProcessID uniquely identifies a process within one workload.
type ProcessID int

// Descriptor is the immutable input for one simulated process.
type Descriptor struct {
	ID          ProcessID `json:"id" yaml:"id"`
	ArrivalTime int       `json:"arrival_time" yaml:"arrival"`
	BurstTime   int       `json:"burst_time" yaml:"burst"`
}

// Tick is a simulated time value that may not have happened yet.
type Tick struct {
	at  int
	set bool
}

// At returns a Tick that is set to t.
func At(t int) Tick { return Tick{at: t, set: true} }

// Get returns the value and whether it was ever set.
func (t Tick) Get() (int, bool) { return t.at, t.set }

// IsSet reports whether the tick has been recorded.
func (t Tick) IsSet() bool { return t.set }

// Value returns the recorded tick. It panics when the tick was never set.
func (t Tick) Value() int {
	if !t.set {
		panic("sched: reading an unset tick")
	}
	return t.at
}

func (t Tick) String() string {
	if !t.set {
		return "-"
	}
	return fmt.Sprint(t.at)
}

// Process is the runtime record of one descriptor during a single simulation run.
// It is created fresh per run and is only mutated by the engine that owns the run.
type Process struct {
	ID          ProcessID
	ArrivalTime int
	BurstTime   int

	Remaining int
	Start     Tick // first dispatch
	Complete  Tick // remaining reached 0

	Waiting    int // Turnaround - BurstTime
	Turnaround int // Complete - ArrivalTime
	Response   int // Start - ArrivalTime
	Runs       int // number of dispatches
}

// NewProcess builds a fresh record from a descriptor.
// NOTE: records must never be carried from one run into another.
func NewProcess(d Descriptor) *Process {
	return &Process{
		ID:          d.ID,
		ArrivalTime: d.ArrivalTime,
		BurstTime:   d.BurstTime,
		Remaining:   d.BurstTime,
	}
}

// Descriptor returns the static part of the record.
func (p *Process) Descriptor() Descriptor {
	return Descriptor{ID: p.ID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime}
}

// Done reports whether the process has finished.
func (p *Process) Done() bool { return p.Complete.IsSet() }

// markStarted records the first dispatch. Later calls are no-ops.
func (p *Process) markStarted(now int) {
	if p.Start.IsSet() {
		return
	}
	p.Start = At(now)
	p.Response = now - p.ArrivalTime
}

// run consumes slice ticks of CPU time.
func (p *Process) run(slice int) {
	if slice <= 0 || slice > p.Remaining {
		panic(fmt.Sprintf("sched: process %d given slice %d with %d remaining", p.ID, slice, p.Remaining))
	}
	p.Remaining -= slice
	p.Runs++
}

// markCompleted stamps completion and derives turnaround and waiting times.
func (p *Process) markCompleted(now int) {
	if p.Remaining != 0 || p.Complete.IsSet() {
		panic(fmt.Sprintf("sched: process %d completed with %d remaining", p.ID, p.Remaining))
	}
	p.Complete = At(now)
	p.Turnaround = now - p.ArrivalTime
	p.Waiting = p.Turnaround - p.BurstTime
}

// ValidateWorkload rejects descriptor lists the engine cannot simulate.
func ValidateWorkload(descs []Descriptor) error {
	if len(descs) == 0 {
		return fmt.Errorf("%w: no processes", ErrInvalidWorkload)
	}
	seen := make(map[ProcessID]struct{}, len(descs))
	for _, d := range descs {
		if d.BurstTime <= 0 {
			return fmt.Errorf("%w: process %d has burst time %d", ErrInvalidWorkload, d.ID, d.BurstTime)
		}
		if d.ArrivalTime < 0 {
			return fmt.Errorf("%w: process %d has arrival time %d", ErrInvalidWorkload, d.ID, d.ArrivalTime)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("%w: process %d appears more than once", ErrInvalidWorkload, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}
