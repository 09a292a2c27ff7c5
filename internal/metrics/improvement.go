package metrics

// Improvement is the percentage by which a candidate beats a baseline.
// Positive numbers mean the candidate is faster.
type Improvement struct {
	Turnaround float64 `json:"turnaround"`
	Waiting    float64 `json:"waiting"`
	Response   float64 `json:"response"`
}

// Compare computes (baseline - candidate) / baseline * 100 for each average.
// A zero baseline contributes 0.
func Compare(baseline, candidate Record) Improvement {
	return Improvement{
		Turnaround: percentGain(baseline.AvgTurnaround, candidate.AvgTurnaround),
		Waiting:    percentGain(baseline.AvgWaiting, candidate.AvgWaiting),
		Response:   percentGain(baseline.AvgResponse, candidate.AvgResponse),
	}
}

// Mean averages a set of improvements.
func Mean(imps []Improvement) Improvement {
	var sum Improvement
	if len(imps) == 0 {
		return sum
	}
	for _, imp := range imps {
		sum.Turnaround += imp.Turnaround
		sum.Waiting += imp.Waiting
		sum.Response += imp.Response
	}
	n := float64(len(imps))
	return Improvement{
		Turnaround: sum.Turnaround / n,
		Waiting:    sum.Waiting / n,
		Response:   sum.Response / n,
	}
}

func percentGain(baseline, candidate float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (baseline - candidate) / baseline * 100
}
