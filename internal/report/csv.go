package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"rrsim/internal/experiment"
)

var csvHeader = []string{"Test Case", "Algorithm", "Avg Turnaround", "Avg Waiting", "Avg Response", "CPU Utilization", "Throughput", "Context Switches"}

// WriteCSV writes one row per (test case, algorithm). Test cases are numbered from 1.
func WriteCSV(w io.Writer, sum experiment.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, c := range sum.Comparisons {
		for _, r := range c.Runs {
			m := r.Metrics
			rec := []string{
				strconv.Itoa(i + 1),
				r.Label,
				formatFloat(m.AvgTurnaround),
				formatFloat(m.AvgWaiting),
				formatFloat(m.AvgResponse),
				formatFloat(m.CPUUtilization),
				formatFloat(m.Throughput),
				strconv.Itoa(m.ContextSwitches),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the summary to path.
func ExportCSV(path string, sum experiment.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, sum); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
