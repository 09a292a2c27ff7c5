package sched

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// arrivalKey orders pending processes by arrival, then by input position.
type arrivalKey struct {
	arrival int
	seq     int
}

func arrivalCmp(a, b any) int {
	ka, kb := a.(arrivalKey), b.(arrivalKey)
	switch {
	case ka.arrival < kb.arrival:
		return -1
	case ka.arrival > kb.arrival:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// arrivals holds processes that have not reached the ready queue yet.
type arrivals struct {
	rbt *redblacktree.Tree
}

func newArrivals(procs []*Process) *arrivals {
	a := &arrivals{rbt: redblacktree.NewWith(arrivalCmp)}
	for i, p := range procs {
		a.rbt.Put(arrivalKey{arrival: p.ArrivalTime, seq: i}, p)
	}
	return a
}

// popDue removes and returns, in arrival order, every process with arrival <= now.
func (a *arrivals) popDue(now int) []*Process {
	var due []*Process
	for {
		node := a.rbt.Left()
		if node == nil {
			return due
		}
		key := node.Key.(arrivalKey)
		if key.arrival > now {
			return due
		}
		a.rbt.Remove(key)
		due = append(due, node.Value.(*Process))
	}
}

func (a *arrivals) Len() int { return a.rbt.Size() }

// readyQueue is the FIFO of runnable processes. Aging may push to the head.
type readyQueue struct {
	list *doublylinkedlist.List
}

func newReadyQueue() *readyQueue {
	return &readyQueue{list: doublylinkedlist.New()}
}

func (q *readyQueue) PushBack(p *Process)  { q.list.Append(p) }
func (q *readyQueue) PushFront(p *Process) { q.list.Prepend(p) }

func (q *readyQueue) PopFront() *Process {
	v, ok := q.list.Get(0)
	if !ok {
		return nil
	}
	q.list.Remove(0)
	return v.(*Process)
}

func (q *readyQueue) Len() int    { return q.list.Size() }
func (q *readyQueue) Empty() bool { return q.list.Empty() }

// Snapshot copies the current queue order, head first.
func (q *readyQueue) Snapshot() []*Process {
	vals := q.list.Values()
	out := make([]*Process, len(vals))
	for i, v := range vals {
		out[i] = v.(*Process)
	}
	return out
}

// IDs returns the queued process ids, head first.
func (q *readyQueue) IDs() []ProcessID {
	vals := q.list.Values()
	out := make([]ProcessID, len(vals))
	for i, v := range vals {
		out[i] = v.(*Process).ID
	}
	return out
}
