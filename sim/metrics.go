// Summary statistics over passenger waits and over replication means.

package sim

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CalculateMean returns the arithmetic mean of data, or 0 for an empty slice.
func CalculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// CalculatePercentile returns the empirical p-quantile (0 <= p <= 1) of data.
// data is not modified. Returns 0 for an empty slice.
func CalculatePercentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Dispersion describes the spread of per-replication means.
type Dispersion struct {
	StdDev float64 // sample standard deviation, 0 when n < 2
	CI95   float64 // half-width of the Student-t 95% confidence interval, 0 when n < 2
}

// CalculateDispersion returns the sample spread of means.
func CalculateDispersion(means []float64) Dispersion {
	n := len(means)
	if n < 2 {
		return Dispersion{}
	}
	sd := stat.StdDev(means, nil)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.975)
	return Dispersion{
		StdDev: sd,
		CI95:   t * sd / math.Sqrt(float64(n)),
	}
}
