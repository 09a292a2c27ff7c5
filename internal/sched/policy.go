// internal/sched/policy.go

package sched

import (
	"fmt"
	"math"
	"sort"
)

// Position is where a preempted process re-enters the ready queue.
type Position int

const (
	Tail Position = iota
	Head
)

func (p Position) String() string {
	if p == Head {
		return "head"
	}
	return "tail"
}

// Class is the diagnostic size class of a process relative to the current quantum.
type Class int

const (
	ClassNone Class = iota
	ClassShort
	ClassMedium
	ClassLong
)

func (c Class) String() string {
	switch c {
	case ClassShort:
		return "SHORT"
	case ClassMedium:
		return "MEDIUM"
	case ClassLong:
		return "LONG"
	default:
		return ""
	}
}

// Decision is a policy's answer for one dispatch.
type Decision struct {
	Slice   int      // ticks the process runs now
	Requeue Position // where it goes if it does not finish
	Quantum int      // quantum the slice was cut from
	Class   Class
}

// Policy decides how long the next process runs and where it is requeued.
// ready is a point-in-time copy of the ready queue, head first, and
// still contains next at index 0.
type Policy interface {
	Name() string
	Decide(ready []*Process, next *Process) Decision
}

// Traditional is classic round-robin with a fixed quantum.
type Traditional struct {
	quantum int
}

// NewTraditional validates the quantum and returns the policy.
func NewTraditional(quantum int) (*Traditional, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("%w: quantum must be > 0, got %d", ErrConfiguration, quantum)
	}
	return &Traditional{quantum: quantum}, nil
}

func (t *Traditional) Name() string { return fmt.Sprintf("Traditional RR (Q=%d)", t.quantum) }

// Quantum returns the fixed quantum.
func (t *Traditional) Quantum() int { return t.quantum }

func (t *Traditional) Decide(_ []*Process, next *Process) Decision {
	return Decision{
		Slice:   min(t.quantum, next.Remaining),
		Requeue: Tail,
		Quantum: t.quantum,
	}
}

const (
	DefaultAdjustmentFactor = 1.5
	DefaultAgingThreshold   = 3
)

// Enhanced derives its quantum from the live ready queue and boosts
// processes that have been preempted too often.
type Enhanced struct {
	factor    float64
	threshold int
}

// NewEnhanced validates the parameters and returns the policy.
func NewEnhanced(adjustmentFactor float64, agingThreshold int) (*Enhanced, error) {
	if !(adjustmentFactor > 0) || math.IsInf(adjustmentFactor, 0) {
		return nil, fmt.Errorf("%w: adjustment factor must be > 0, got %v", ErrConfiguration, adjustmentFactor)
	}
	if agingThreshold <= 0 {
		return nil, fmt.Errorf("%w: aging threshold must be >= 1, got %d", ErrConfiguration, agingThreshold)
	}
	return &Enhanced{factor: adjustmentFactor, threshold: agingThreshold}, nil
}

func (e *Enhanced) Name() string { return "Enhanced RR" }

func (e *Enhanced) AdjustmentFactor() float64 { return e.factor }
func (e *Enhanced) AgingThreshold() int       { return e.threshold }

// Quantum is floor(median(remaining) * factor), never below 1.
// Processes with nothing left are ignored; an empty set yields 1.
func (e *Enhanced) Quantum(ready []*Process) int {
	remaining := make([]int, 0, len(ready))
	for _, p := range ready {
		if p.Remaining > 0 {
			remaining = append(remaining, p.Remaining)
		}
	}
	if len(remaining) == 0 {
		return 1
	}
	q := math.Floor(Median(remaining) * e.factor)
	if q >= math.MaxInt {
		return math.MaxInt
	}
	return max(1, int(q))
}

func (e *Enhanced) Decide(ready []*Process, next *Process) Decision {
	q := e.Quantum(ready)
	d := Decision{
		Slice:   min(q, next.Remaining),
		Requeue: Tail,
		Quantum: q,
		Class:   Classify(next.Remaining, q),
	}
	// the dispatch about to happen counts toward aging
	if next.Runs+1 >= e.threshold {
		d.Requeue = Head
	}
	return d
}

// Classify buckets remaining time against a quantum.
func Classify(remaining, quantum int) Class {
	switch r, q := float64(remaining), float64(quantum); {
	case r < q/2:
		return ClassShort
	case r > q*2:
		return ClassLong
	default:
		return ClassMedium
	}
}

// Median returns the statistical median; even counts average the two middle values.
func Median(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]int, len(vals))
	copy(sorted, vals)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
