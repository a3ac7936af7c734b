package benchmarkservice

import (
	"sort"
	"time"

	servicemodels "github.com/RobsonDevCode/growmate-probe/internal/services/models"
)

// Milliseconds keeps the sub-microsecond part, the <1ms verdict depends on it.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := sortedCopy(values)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Quantiles returns the n-1 cut points dividing values into n groups, using
// the exclusive method (interpolating over len+1 positions).
func Quantiles(values []float64, n int) []float64 {
	if n < 2 || len(values) == 0 {
		return nil
	}

	sorted := sortedCopy(values)
	cuts := make([]float64, 0, n-1)
	if len(sorted) == 1 {
		for i := 1; i < n; i++ {
			cuts = append(cuts, sorted[0])
		}
		return cuts
	}

	size := len(sorted)
	m := size + 1
	for i := 1; i < n; i++ {
		j := i * m / n
		if j < 1 {
			j = 1
		} else if j > size-1 {
			j = size - 1
		}
		delta := i*m - j*n
		interpolated := (sorted[j-1]*float64(n-delta) + sorted[j]*float64(delta)) / float64(n)
		cuts = append(cuts, interpolated)
	}

	return cuts
}

func P99(values []float64) float64 {
	cuts := Quantiles(values, 100)
	if len(cuts) == 0 {
		return 0
	}
	return cuts[98]
}

func VerdictFor(avgMs float64) servicemodels.Verdict {
	switch {
	case avgMs < 1.0:
		return servicemodels.VerdictExtremelyFast
	case avgMs < 10.0:
		return servicemodels.VerdictFast
	default:
		return servicemodels.VerdictSlow
	}
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
