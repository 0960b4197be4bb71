package noise

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a sample.
type Stats struct {
	N        int
	Mean     float64
	Variance float64
	StdDev   float64
}

// Summarize returns the sample mean and unbiased variance of xs.
func Summarize(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	m, v := stat.MeanVariance(xs, nil)
	if len(xs) == 1 {
		v = 0
	}
	return Stats{N: len(xs), Mean: m, Variance: v, StdDev: math.Sqrt(v)}
}
