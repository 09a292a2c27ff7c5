package workload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rrsim/internal/sched"
)

func TestBuiltin(t *testing.T) {
	ws := Builtin()
	if len(ws) != 4 {
		t.Fatalf("got %d workloads", len(ws))
	}
	for _, w := range ws {
		if len(w.Processes) != 5 {
			t.Errorf("%s has %d processes", w.Name, len(w.Processes))
		}
	}

	// callers may not corrupt later calls
	ws[0].Processes[0].BurstTime = 99
	if Builtin()[0].Processes[0].BurstTime != 10 {
		t.Error("Builtin shares state between calls")
	}

	w, ok := Lookup("bursty")
	if !ok || w.Processes[4].ArrivalTime != 20 {
		t.Errorf("Lookup(bursty) = %+v, %v", w, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) succeeded")
	}
}

func TestBurstRange(t *testing.T) {
	w, _ := Lookup("long")
	lo, hi, err := w.BurstRange()
	if err != nil || lo != 15 || hi != 25 {
		t.Errorf("BurstRange = %d, %d, %v", lo, hi, err)
	}
	if _, _, err := (Workload{Name: "x"}).BurstRange(); !errors.Is(err, sched.ErrInvalidWorkload) {
		t.Errorf("empty BurstRange err = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workloads.yml")
	body := `
workloads:
  - name: pair
    processes:
      - {id: 1, arrival: 0, burst: 4}
      - {id: 2, arrival: 3, burst: 2}
  - processes:
      - {id: 9, arrival: 1, burst: 1}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	ws, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ws) != 2 || ws[0].Name != "pair" || ws[1].Name != "workload-2" {
		t.Fatalf("workloads = %+v", ws)
	}
	want := sched.Descriptor{ID: 2, ArrivalTime: 3, BurstTime: 2}
	if ws[0].Processes[1] != want {
		t.Errorf("descriptor = %+v, want %+v", ws[0].Processes[1], want)
	}

	if ws, err := Load(""); err != nil || len(ws) != 4 {
		t.Errorf("Load(\"\") = %d workloads, %v", len(ws), err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing file accepted")
	}

	empty := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(empty, []byte("workloads: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); !errors.Is(err, sched.ErrInvalidWorkload) {
		t.Errorf("empty file err = %v", err)
	}
}
