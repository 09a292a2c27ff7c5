package sched

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Trace writes status events as CSV rows. One Trace may be shared by
// several concurrent runs; each run gets its own labelled observer.
type Trace struct {
	mu   sync.Mutex
	w    *csv.Writer
	file *os.File
	err  error
}

var traceHeader = []string{"run", "tick", "event", "process_id", "slice", "remaining", "runs", "quantum", "class", "position", "queue"}

// NewTrace writes the header to w and returns the trace.
func NewTrace(w io.Writer) *Trace {
	t := &Trace{w: csv.NewWriter(w)}
	t.write(traceHeader)
	return t
}

// CreateTrace opens path for CSV logging of events.
func CreateTrace(path string) (*Trace, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	t := NewTrace(f)
	t.file = f
	return t, nil
}

// For returns an observer that tags every row with label.
func (t *Trace) For(label string) func(StatusEvent) {
	return func(ev StatusEvent) {
		queue := make([]string, len(ev.Queue))
		for i, id := range ev.Queue {
			queue[i] = strconv.Itoa(int(id))
		}
		rec := []string{
			label,
			strconv.Itoa(ev.Tick),
			ev.Kind.String(),
			"",
			strconv.Itoa(ev.Slice),
			strconv.Itoa(ev.Remaining),
			strconv.Itoa(ev.Runs),
			strconv.Itoa(ev.Quantum),
			ev.Class.String(),
			"",
			strings.Join(queue, " "),
		}
		if ev.Kind != StatusIdle {
			rec[3] = strconv.Itoa(int(ev.ProcessID))
		}
		if ev.Kind == StatusPreempt || ev.Kind == StatusEnqueue {
			rec[9] = ev.Position.String()
		}
		t.write(rec)
	}
}

func (t *Trace) write(rec []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	t.err = t.w.Write(rec)
}

// Close flushes buffered rows and closes the file, if the trace owns one.
func (t *Trace) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w.Flush()
	if t.err == nil {
		t.err = t.w.Error()
	}
	if t.file != nil {
		if err := t.file.Close(); err != nil && t.err == nil {
			t.err = err
		}
		t.file = nil
	}
	return t.err
}
