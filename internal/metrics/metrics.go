package metrics

import "rrsim/internal/sched"

// Record is the aggregate performance of one simulation run.
type Record struct {
	AvgTurnaround   float64 `json:"avg_turnaround"`
	AvgWaiting      float64 `json:"avg_waiting"`
	AvgResponse     float64 `json:"avg_response"`
	CPUUtilization  float64 `json:"cpu_utilization"` // percent
	Throughput      float64 `json:"throughput"`      // processes per tick
	ContextSwitches int     `json:"context_switches"`
}

// Calculate averages the per-process times of a completed batch and derives
// utilization and throughput over totalTime. A zero totalTime yields zero
// utilization and throughput.
func Calculate(completed []*sched.Process, contextSwitches, totalTime, idleTime int) Record {
	rec := Record{ContextSwitches: contextSwitches}

	if n := len(completed); n > 0 {
		var turnaround, waiting, response int
		for _, p := range completed {
			turnaround += p.Turnaround
			waiting += p.Waiting
			response += p.Response
		}
		rec.AvgTurnaround = float64(turnaround) / float64(n)
		rec.AvgWaiting = float64(waiting) / float64(n)
		rec.AvgResponse = float64(response) / float64(n)
	}

	if totalTime > 0 {
		rec.CPUUtilization = float64(totalTime-idleTime) / float64(totalTime) * 100
		rec.Throughput = float64(len(completed)) / float64(totalTime)
	}
	return rec
}

// FromResult computes the record of a finished run, using its last completion as total time.
func FromResult(res sched.Result) Record {
	return Calculate(res.Completed, res.Counters.ContextSwitches, res.Elapsed, res.Counters.IdleTime)
}
