// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent is emitted on every idle tick and on key actions.
// Queue is the ready queue order (head first) right after the event.
type StatusEvent struct {
	Tick      int
	Kind      StatusKind
	ProcessID ProcessID
	Slice     int
	Remaining int
	Runs      int
	Quantum   int
	Class     Class
	Position  Position
	Queue     []ProcessID
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}
