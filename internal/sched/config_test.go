package sched

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg.Enhanced.AdjustmentFactor != 1.5 || cfg.Enhanced.AgingThreshold != 3 {
			t.Errorf("enhanced defaults = %+v", cfg.Enhanced)
		}
		if len(cfg.TraditionalQuanta) != 2 || cfg.TraditionalQuanta[0] != 4 || cfg.TraditionalQuanta[1] != 2 {
			t.Errorf("quanta = %v", cfg.TraditionalQuanta)
		}
		if cfg.MaxSweepWidth != 1000 || cfg.MaxArrivalTime != 1_000_000 {
			t.Errorf("limits = %d, %d", cfg.MaxSweepWidth, cfg.MaxArrivalTime)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, "rrsim.yml", `
enhanced:
  adjustment_factor: 2.0
traditional_quanta: [3]
csv_path: out.csv
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enhanced.AdjustmentFactor != 2.0 || cfg.Enhanced.AgingThreshold != 3 {
		t.Errorf("enhanced = %+v", cfg.Enhanced)
	}
	if len(cfg.TraditionalQuanta) != 1 || cfg.TraditionalQuanta[0] != 3 {
		t.Errorf("quanta = %v", cfg.TraditionalQuanta)
	}
	if cfg.CSVPath != "out.csv" || cfg.Listen != ":9095" {
		t.Errorf("paths = %q %q", cfg.CSVPath, cfg.Listen)
	}

	policies, err := cfg.Policies()
	if err != nil {
		t.Fatalf("Policies: %v", err)
	}
	if len(policies) != 2 || policies[0].Name() != "Enhanced RR" || policies[1].Name() != "Traditional RR (Q=3)" {
		t.Errorf("policies = %v", policies)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yml", "enhanced:\n  aging_threshold: 0\n")
	if _, err := Load(path); !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}

	path = writeFile(t, "quanta.yml", "traditional_quanta: [4, -1]\n")
	if _, err := Load(path); !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}

	path = writeFile(t, "width.yml", "max_sweep_width: 0\n")
	if _, err := Load(path); !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}

	path = writeFile(t, "broken.yml", "enhanced: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestTickClock(t *testing.T) {
	var c TickClock
	c.Idle()
	c.Run(4)
	c.Idle()
	if c.Now() != 6 || c.IdleTicks() != 2 || c.BusyTicks() != 4 {
		t.Errorf("now=%d idle=%d busy=%d", c.Now(), c.IdleTicks(), c.BusyTicks())
	}

	defer func() {
		if recover() == nil {
			t.Error("zero slice did not panic")
		}
	}()
	c.Run(0)
}
