package metrics

import "math"

// Summary holds single-pass statistics of a distance vector, reported
// alongside the scalar score so that submissions with the same mean can
// still be told apart.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
}

// Summarize computes distance statistics in a single pass using
// Welford's online algorithm for numerical stability on higher-order
// moments.
func Summarize(dists []float64) Summary {
	n := len(dists)
	if n == 0 {
		return Summary{}
	}

	var (
		mean float64
		m2   float64
		m3   float64
	)

	minVal := dists[0]
	maxVal := dists[0]

	for i, x := range dists {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		term1 := delta * deltaN * float64(i)

		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		if x < minVal {
			minVal = x
		}
		if x > maxVal {
			maxVal = x
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
	}

	return Summary{
		Count:    n,
		Mean:     mean,
		Min:      minVal,
		Max:      maxVal,
		Variance: variance,
		Skewness: skewness,
	}
}
