// Package testutil provides deterministic test data and tolerance
// assertions shared by the numeric package tests.
package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, math.Abs(got-want), eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// GaussianFrame builds a ny-by-nx frame holding a unit-peak Gaussian
// blob centered at (cy, cx) with the given sigma.
func GaussianFrame(ny, nx int, cy, cx, sigma float64) []float64 {
	out := make([]float64, ny*nx)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			d2 := (float64(y)-cy)*(float64(y)-cy) + (float64(x)-cx)*(float64(x)-cx)
			out[y*nx+x] = math.Exp(-0.5 * d2 / (sigma * sigma))
		}
	}

	return out
}

// Centroid returns the flux-weighted center of a frame.
func Centroid(frame []float64, ny, nx int) (cy, cx float64) {
	var sum, sy, sx float64
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			v := frame[y*nx+x]
			sum += v
			sy += v * float64(y)
			sx += v * float64(x)
		}
	}

	return sy / sum, sx / sum
}

// Sum returns the total of all elements.
func Sum(data []float64) float64 {
	var sum float64
	for _, v := range data {
		sum += v
	}

	return sum
}
