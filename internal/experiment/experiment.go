package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"rrsim/internal/metrics"
	"rrsim/internal/sched"
	"rrsim/internal/workload"
)

// Run is one policy applied to one workload.
type Run struct {
	Workload string         `json:"workload"`
	Label    string         `json:"label"`
	Result   sched.Result   `json:"-"`
	Metrics  metrics.Record `json:"metrics"`
}

// Comparison holds every configured policy run on one workload.
// Runs[0] is Enhanced RR and Runs[1] the traditional baseline.
type Comparison struct {
	Workload    string              `json:"workload"`
	Runs        []Run               `json:"runs"`
	Improvement metrics.Improvement `json:"improvement"`
}

// Summary is the outcome of comparing policies over several workloads.
type Summary struct {
	Comparisons []Comparison        `json:"comparisons"`
	Mean        metrics.Improvement `json:"mean_improvement"`
}

// Harness drives independent simulation runs and gathers their metrics.
type Harness struct {
	policies   []sched.Policy
	logger     *log.Logger
	trace      *sched.Trace
	sweepWidth int
	slots      chan struct{} // bounds concurrent runs
}

// New builds a harness for the policies described by cfg.
func New(cfg sched.Config, logger *log.Logger) (*Harness, error) {
	policies, err := cfg.Policies()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.MaxSweepWidth <= 0 {
		return nil, fmt.Errorf("%w: max sweep width must be > 0, got %d", sched.ErrConfiguration, cfg.MaxSweepWidth)
	}
	return &Harness{
		policies:   policies,
		logger:     logger,
		sweepWidth: cfg.MaxSweepWidth,
		slots:      make(chan struct{}, runtime.GOMAXPROCS(0)),
	}, nil
}

// WithTrace records every run's status events to t.
func (h *Harness) WithTrace(t *sched.Trace) *Harness {
	h.trace = t
	return h
}

// Policies returns the configured policies, Enhanced first.
func (h *Harness) Policies() []sched.Policy { return h.policies }

// Compare runs every configured policy on each workload.
func (h *Harness) Compare(ctx context.Context, ws []workload.Workload) (Summary, error) {
	var sum Summary
	imps := make([]metrics.Improvement, 0, len(ws))

	for _, w := range ws {
		runs, err := h.RunAll(ctx, w, h.policies)
		if err != nil {
			return Summary{}, err
		}
		imp := metrics.Compare(runs[1].Metrics, runs[0].Metrics)
		sum.Comparisons = append(sum.Comparisons, Comparison{
			Workload:    w.Name,
			Runs:        runs,
			Improvement: imp,
		})
		imps = append(imps, imp)
	}
	sum.Mean = metrics.Mean(imps)
	return sum, nil
}

// Sweep runs Traditional RR for every quantum from the smallest to the largest burst.
// Ranges wider than the configured sweep width are rejected.
func (h *Harness) Sweep(ctx context.Context, w workload.Workload) ([]Run, error) {
	if err := sched.ValidateWorkload(w.Processes); err != nil {
		return nil, fmt.Errorf("workload %s: %w", w.Name, err)
	}
	lo, hi, err := w.BurstRange()
	if err != nil {
		return nil, err
	}
	if width := hi - lo + 1; width > h.sweepWidth {
		return nil, fmt.Errorf("%w: workload %s sweeps %d quanta, limit is %d", sched.ErrInvalidWorkload, w.Name, width, h.sweepWidth)
	}
	policies := make([]sched.Policy, 0, hi-lo+1)
	for q := lo; q <= hi; q++ {
		p, err := sched.NewTraditional(q)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return h.RunAll(ctx, w, policies)
}

// RunAll simulates w under each policy concurrently, at most GOMAXPROCS
// runs at a time. Every run builds its own process records from the shared descriptors.
func (h *Harness) RunAll(ctx context.Context, w workload.Workload, policies []sched.Policy) ([]Run, error) {
	runs := make([]Run, len(policies))
	errs := make([]error, len(policies))

	var wg sync.WaitGroup
	wg.Add(len(policies))
	for i, pol := range policies {
		i, pol := i, pol
		h.slots <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-h.slots }()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			runs[i], errs[i] = h.runOne(w, pol)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return runs, nil
}

func (h *Harness) runOne(w workload.Workload, pol sched.Policy) (Run, error) {
	s := sched.New(pol)
	if h.trace != nil {
		s.Observe(h.trace.For(w.Name + "/" + pol.Name()))
	}

	res, err := s.Schedule(w.Processes)
	if err != nil {
		return Run{}, fmt.Errorf("workload %s, %s: %w", w.Name, pol.Name(), err)
	}
	rec := metrics.FromResult(res)
	h.logger.Printf("workload %s: %s finished %d processes at tick %d (%d switches, %d idle)",
		w.Name, pol.Name(), len(res.Completed), res.Elapsed, res.Counters.ContextSwitches, res.Counters.IdleTime)

	return Run{
		Workload: w.Name,
		Label:    pol.Name(),
		Result:   res,
		Metrics:  rec,
	}, nil
}
