package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"rrsim/internal/experiment"
	"rrsim/internal/metrics"
	"rrsim/internal/sched"
)

var metricHeaders = []string{"Algorithm", "Avg Turnaround", "Avg Waiting", "Avg Response", "CPU Util %", "Throughput", "Ctx Switches"}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		}).
		Headers(headers...)
}

func metricRow(label string, m metrics.Record) []string {
	return []string{
		label,
		f2(m.AvgTurnaround),
		f2(m.AvgWaiting),
		f2(m.AvgResponse),
		f2(m.CPUUtilization),
		fmt.Sprintf("%.4f", m.Throughput),
		strconv.Itoa(m.ContextSwitches),
	}
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

// WriteComparison prints one workload's metrics, one row per policy.
func WriteComparison(w io.Writer, index int, c experiment.Comparison) {
	t := newTable(metricHeaders...)
	for _, r := range c.Runs {
		t.Row(metricRow(r.Label, r.Metrics)...)
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Test Case %d: %s", index, c.Workload)))
	fmt.Fprintln(w, t.String())
}

// WriteSummary prints the average improvement of Enhanced RR over the baseline.
func WriteSummary(w io.Writer, baseline string, mean metrics.Improvement) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Summary of improvements (Enhanced RR vs %s)", baseline)))
	fmt.Fprintf(w, "Average improvement in turnaround time: %s\n", percent(mean.Turnaround))
	fmt.Fprintf(w, "Average improvement in waiting time:    %s\n", percent(mean.Waiting))
	fmt.Fprintf(w, "Average improvement in response time:   %s\n", percent(mean.Response))
}

func percent(v float64) string {
	s := fmt.Sprintf("%.2f%%", v)
	if v < 0 {
		return lossStyle.Render(s)
	}
	return gainStyle.Render(s)
}

// WriteSummaryReport prints every comparison followed by the improvement summary.
func WriteSummaryReport(w io.Writer, sum experiment.Summary) {
	for i, c := range sum.Comparisons {
		WriteComparison(w, i+1, c)
	}
	if len(sum.Comparisons) > 0 && len(sum.Comparisons[0].Runs) > 1 {
		WriteSummary(w, sum.Comparisons[0].Runs[1].Label, sum.Mean)
	}
}

// WriteSweep prints one row per quantum.
func WriteSweep(w io.Writer, workload string, runs []experiment.Run) {
	t := newTable(metricHeaders...)
	for _, r := range runs {
		t.Row(metricRow(r.Label, r.Metrics)...)
	}
	fmt.Fprintln(w, titleStyle.Render("Quantum sweep: "+workload))
	fmt.Fprintln(w, t.String())
}

// WriteProcesses prints the per-process outcome of a single run, in completion order.
func WriteProcesses(w io.Writer, r experiment.Run) {
	t := newTable("PID", "Arrival", "Burst", "Start", "Completion", "Turnaround", "Waiting", "Response", "Runs")
	for _, p := range r.Result.Completed {
		t.Row(processRow(p)...)
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s on %s", r.Label, r.Workload)))
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, newTable(metricHeaders...).Row(metricRow(r.Label, r.Metrics)...).String())
}

func processRow(p *sched.Process) []string {
	return []string{
		strconv.Itoa(int(p.ID)),
		strconv.Itoa(p.ArrivalTime),
		strconv.Itoa(p.BurstTime),
		p.Start.String(),
		p.Complete.String(),
		strconv.Itoa(p.Turnaround),
		strconv.Itoa(p.Waiting),
		strconv.Itoa(p.Response),
		strconv.Itoa(p.Runs),
	}
}
