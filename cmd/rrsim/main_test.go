package main

import (
	"path/filepath"
	"testing"
)

func TestOptionsLoad(t *testing.T) {
	o := options{
		configPath:   filepath.Join(t.TempDir(), "absent.yml"),
		workloadPath: filepath.Join("testdata", "workloads.yml"),
		name:         "starvation",
	}
	cfg, ws, err := o.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkloadPath != o.workloadPath || cfg.Enhanced.AgingThreshold != 3 {
		t.Errorf("config = %+v", cfg)
	}
	if len(ws) != 1 || ws[0].Name != "starvation" || len(ws[0].Processes) != 3 {
		t.Errorf("workloads = %+v", ws)
	}

	o.name = "nope"
	if _, _, err := o.load(); err == nil {
		t.Error("unknown workload name accepted")
	}

	o = options{configPath: ""}
	if _, ws, err := o.load(); err != nil || len(ws) != 4 {
		t.Errorf("built-ins = %d, %v", len(ws), err)
	}
}

func TestServeFlags(t *testing.T) {
	configPath, listen, err := parseServeFlags([]string{"-config", "other.yml", "-listen", ":8080"})
	if err != nil || configPath != "other.yml" || listen != ":8080" {
		t.Errorf("parse = %q, %q, %v", configPath, listen, err)
	}
	for _, flagName := range []string{"-trace", "-workload", "-name"} {
		if _, _, err := parseServeFlags([]string{flagName, "x"}); err == nil {
			t.Errorf("serve accepted %s", flagName)
		}
	}
}
