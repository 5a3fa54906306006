package stats

import (
	mstats "github.com/montanaflynn/stats"
)

// Summary describes a series of step distances
type Summary struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	P95   float64 `json:"p95"`
	Max   float64 `json:"max"`
}

// Describe summarises values; an empty series yields the zero Summary
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	data := mstats.Float64Data(values)
	s := Summary{Count: len(values)}
	s.Sum, _ = mstats.Sum(data)
	s.Mean, _ = mstats.Mean(data)
	s.Max, _ = mstats.Max(data)
	s.P95, _ = mstats.Percentile(data, 95)
	return s
}
