package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"rrsim/internal/api"
	"rrsim/internal/experiment"
	"rrsim/internal/report"
	"rrsim/internal/sched"
	"rrsim/internal/workload"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	logger := log.New(os.Stderr, "[rrsim] ", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "compare":
		err = runCompare(ctx, args, logger)
	case "sweep":
		err = runSweep(ctx, args, logger)
	case "run":
		err = runSingle(ctx, args, logger)
	case "serve":
		err = runServe(ctx, args, logger)
	case "help":
		usage()
	default:
		fmt.Println("unknown command:", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`
        rrsim commands:
        rrsim compare   → Enhanced RR vs Traditional RR on every workload, exported to CSV
        rrsim sweep     → Traditional RR for every quantum between the shortest and longest burst
        rrsim run       → one policy on one workload, per-process details
        rrsim serve     → HTTP API on /api/v1
        rrsim help      → show help

        compare/sweep/run flags: -config rrsim.yml -workload workloads.yml -name mixed -trace events.csv
        serve flags:             -config rrsim.yml -listen :9095
    `)
}

// options are the flags shared by every subcommand.
type options struct {
	configPath   string
	workloadPath string
	tracePath    string
	name         string
}

func newFlagSet(name string, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "rrsim.yml", "YAML configuration file")
	fs.StringVar(&o.workloadPath, "workload", "", "YAML workload file (default: built-in scenarios)")
	fs.StringVar(&o.tracePath, "trace", "", "write every scheduler event to this CSV file")
	fs.StringVar(&o.name, "name", "", "only use the workload with this name")
	return fs
}

// load reads configuration and workloads; flags override the config file.
func (o *options) load() (sched.Config, []workload.Workload, error) {
	cfg, err := sched.Load(o.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if o.workloadPath != "" {
		cfg.WorkloadPath = o.workloadPath
	}
	if o.tracePath != "" {
		cfg.TracePath = o.tracePath
	}

	ws, err := workload.Load(cfg.WorkloadPath)
	if err != nil {
		return cfg, nil, err
	}
	if o.name == "" {
		return cfg, ws, nil
	}
	for _, w := range ws {
		if w.Name == o.name {
			return cfg, []workload.Workload{w}, nil
		}
	}
	return cfg, nil, fmt.Errorf("no workload named %q", o.name)
}

// harness builds the experiment harness and, if requested, its trace.
func harness(cfg sched.Config, logger *log.Logger) (*experiment.Harness, func() error, error) {
	h, err := experiment.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.TracePath == "" {
		return h, func() error { return nil }, nil
	}
	tr, err := sched.CreateTrace(cfg.TracePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Printf("tracing scheduler events to %s", cfg.TracePath)
	return h.WithTrace(tr), tr.Close, nil
}

func runCompare(ctx context.Context, args []string, logger *log.Logger) error {
	var o options
	var csvPath string
	fs := newFlagSet("compare", &o)
	fs.StringVar(&csvPath, "csv", "", "results CSV (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, ws, err := o.load()
	if err != nil {
		return err
	}
	if csvPath != "" {
		cfg.CSVPath = csvPath
	}

	h, closeTrace, err := harness(cfg, logger)
	if err != nil {
		return err
	}
	sum, err := h.Compare(ctx, ws)
	if cerr := closeTrace(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	report.WriteSummaryReport(os.Stdout, sum)
	if cfg.CSVPath == "" {
		return nil
	}
	if err := report.ExportCSV(cfg.CSVPath, sum); err != nil {
		return fmt.Errorf("export results: %w", err)
	}
	logger.Printf("results exported to %s", cfg.CSVPath)
	return nil
}

func runSweep(ctx context.Context, args []string, logger *log.Logger) error {
	var o options
	if err := newFlagSet("sweep", &o).Parse(args); err != nil {
		return err
	}
	cfg, ws, err := o.load()
	if err != nil {
		return err
	}
	h, closeTrace, err := harness(cfg, logger)
	if err != nil {
		return err
	}
	defer closeTrace()

	for _, w := range ws {
		runs, err := h.Sweep(ctx, w)
		if err != nil {
			return err
		}
		report.WriteSweep(os.Stdout, w.Name, runs)
	}
	return closeTrace()
}

func runSingle(ctx context.Context, args []string, logger *log.Logger) error {
	var o options
	var policyName string
	var quantum int
	fs := newFlagSet("run", &o)
	fs.StringVar(&policyName, "policy", "enhanced", "enhanced or traditional")
	fs.IntVar(&quantum, "quantum", 0, "traditional quantum (default: first configured quantum)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, ws, err := o.load()
	if err != nil {
		return err
	}

	var policy sched.Policy
	switch policyName {
	case "enhanced":
		policy, err = sched.NewEnhanced(cfg.Enhanced.AdjustmentFactor, cfg.Enhanced.AgingThreshold)
	case "traditional":
		if quantum == 0 {
			quantum = cfg.TraditionalQuanta[0]
		}
		policy, err = sched.NewTraditional(quantum)
	default:
		err = fmt.Errorf("%w: unknown policy %q", sched.ErrConfiguration, policyName)
	}
	if err != nil {
		return err
	}

	h, closeTrace, err := harness(cfg, logger)
	if err != nil {
		return err
	}
	defer closeTrace()

	for _, w := range ws {
		runs, err := h.RunAll(ctx, w, []sched.Policy{policy})
		if err != nil {
			return err
		}
		report.WriteProcesses(os.Stdout, runs[0])
	}
	return closeTrace()
}

// parseServeFlags accepts only what the server uses.
func parseServeFlags(args []string) (configPath, listen string, err error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "rrsim.yml", "YAML configuration file")
	fs.StringVar(&listen, "listen", "", "listen address (default from config)")
	err = fs.Parse(args)
	return configPath, listen, err
}

func runServe(ctx context.Context, args []string, logger *log.Logger) error {
	configPath, listen, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	cfg, err := sched.Load(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	app, err := api.NewServer(cfg, logger)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		app.Shutdown()
	}()
	logger.Printf("listening on %s", cfg.Listen)
	return app.Listen(cfg.Listen)
}
