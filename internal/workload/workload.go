package workload

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"rrsim/internal/sched"
)

// Workload is a named, immutable set of process descriptors.
type Workload struct {
	Name      string             `yaml:"name" json:"name"`
	Processes []sched.Descriptor `yaml:"processes" json:"processes"`
}

// file mirrors a workload YAML document.
type file struct {
	Workloads []Workload `yaml:"workloads"`
}

// Builtin returns the four standard comparison scenarios.
func Builtin() []Workload {
	return []Workload{
		{Name: "mixed", Processes: []sched.Descriptor{
			{ID: 1, ArrivalTime: 0, BurstTime: 10},
			{ID: 2, ArrivalTime: 0, BurstTime: 5},
			{ID: 3, ArrivalTime: 0, BurstTime: 8},
			{ID: 4, ArrivalTime: 0, BurstTime: 12},
			{ID: 5, ArrivalTime: 0, BurstTime: 6},
		}},
		{Name: "short", Processes: []sched.Descriptor{
			{ID: 1, ArrivalTime: 0, BurstTime: 3},
			{ID: 2, ArrivalTime: 1, BurstTime: 2},
			{ID: 3, ArrivalTime: 2, BurstTime: 4},
			{ID: 4, ArrivalTime: 3, BurstTime: 1},
			{ID: 5, ArrivalTime: 4, BurstTime: 2},
		}},
		{Name: "long", Processes: []sched.Descriptor{
			{ID: 1, ArrivalTime: 0, BurstTime: 20},
			{ID: 2, ArrivalTime: 2, BurstTime: 15},
			{ID: 3, ArrivalTime: 4, BurstTime: 25},
			{ID: 4, ArrivalTime: 6, BurstTime: 18},
			{ID: 5, ArrivalTime: 8, BurstTime: 22},
		}},
		{Name: "bursty", Processes: []sched.Descriptor{
			{ID: 1, ArrivalTime: 0, BurstTime: 8},
			{ID: 2, ArrivalTime: 0, BurstTime: 6},
			{ID: 3, ArrivalTime: 10, BurstTime: 4},
			{ID: 4, ArrivalTime: 10, BurstTime: 7},
			{ID: 5, ArrivalTime: 20, BurstTime: 5},
		}},
	}
}

// Lookup finds a built-in workload by name.
func Lookup(name string) (Workload, bool) {
	for _, w := range Builtin() {
		if w.Name == name {
			return w, true
		}
	}
	return Workload{}, false
}

// Load reads workloads from a YAML file; an empty path = built-ins only
func Load(path string) ([]Workload, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Workloads) == 0 {
		return nil, fmt.Errorf("%w: %s defines no workloads", sched.ErrInvalidWorkload, path)
	}
	for i, w := range f.Workloads {
		if w.Name == "" {
			f.Workloads[i].Name = fmt.Sprintf("workload-%d", i+1)
		}
	}
	return f.Workloads, nil
}

// BurstRange returns the smallest and largest burst time.
func (w Workload) BurstRange() (lo, hi int, err error) {
	if len(w.Processes) == 0 {
		return 0, 0, fmt.Errorf("%w: workload %q is empty", sched.ErrInvalidWorkload, w.Name)
	}
	lo, hi = w.Processes[0].BurstTime, w.Processes[0].BurstTime
	for _, d := range w.Processes[1:] {
		lo = min(lo, d.BurstTime)
		hi = max(hi, d.BurstTime)
	}
	return lo, hi, nil
}
