package api

import (
	"rrsim/internal/experiment"
	"rrsim/internal/metrics"
	"rrsim/internal/sched"
)

// ScheduleRequest is the body of every simulation endpoint. Zero-valued
// policy parameters fall back to the server configuration.
type ScheduleRequest struct {
	Processes        []sched.Descriptor `json:"processes"`
	Quantum          int                `json:"quantum"`
	AdjustmentFactor float64            `json:"adjustment_factor"`
	AgingThreshold   int                `json:"aging_threshold"`
}

type ProcessResponse struct {
	ProcessId      int `json:"process_id"`
	ArrivalTime    int `json:"arrival_time"`
	BurstTime      int `json:"burst_time"`
	StartTime      int `json:"start_time"`
	CompletionTime int `json:"completion_time"`
	ResponseTime   int `json:"response_time"`
	TurnAroundTime int `json:"turn_around_time"`
	WaitingTime    int `json:"waiting_time"`
	Runs           int `json:"runs"`
}

type ScheduleResponse struct {
	Algorithm       string            `json:"algorithm"`
	TotalTime       int               `json:"total_time"`
	IdleTime        int               `json:"idle_time"`
	ContextSwitches int               `json:"context_switches"`
	Metrics         metrics.Record    `json:"metrics"`
	Details         []ProcessResponse `json:"details"`
}

type SweepResponse struct {
	Runs []ScheduleResponse `json:"runs"`
}

func newScheduleResponse(r experiment.Run) ScheduleResponse {
	res := r.Result
	details := make([]ProcessResponse, 0, len(res.Completed))
	for _, p := range res.Completed {
		details = append(details, ProcessResponse{
			ProcessId:      int(p.ID),
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			StartTime:      p.Start.Value(),
			CompletionTime: p.Complete.Value(),
			ResponseTime:   p.Response,
			TurnAroundTime: p.Turnaround,
			WaitingTime:    p.Waiting,
			Runs:           p.Runs,
		})
	}
	return ScheduleResponse{
		Algorithm:       r.Label,
		TotalTime:       res.Elapsed,
		IdleTime:        res.Counters.IdleTime,
		ContextSwitches: res.Counters.ContextSwitches,
		Metrics:         r.Metrics,
		Details:         details,
	}
}
