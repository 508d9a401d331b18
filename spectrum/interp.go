package spectrum

import (
	"errors"
	"sort"
)

// ErrUnknownInterpolation indicates an unsupported interpolation method.
var ErrUnknownInterpolation = errors.New("spectrum: unknown interpolation method")

// Interpolation selects the method used to evaluate a sampled curve
// between its grid points.
type Interpolation int

const (
	// InterpLinear performs piecewise linear interpolation.
	InterpLinear Interpolation = iota

	// InterpHermite performs cubic 4-point Hermite interpolation. It is
	// smoother than linear interpolation and does not overshoot as much
	// as a global spline on sharp spectral features.
	InterpHermite
)

// Interpolate evaluates a sampled curve (xs, ys) at x. The xs grid must
// be strictly increasing but may be non-uniform. Queries outside the
// grid clamp to the nearest endpoint value.
func Interpolate(xs, ys []float64, x float64, method Interpolation) (float64, error) {
	if len(xs) != len(ys) {
		return 0, ErrLengthMismatch
	}
	if len(xs) < 2 {
		return 0, ErrTooFewSamples
	}
	if method != InterpLinear && method != InterpHermite {
		return 0, ErrUnknownInterpolation
	}

	if x <= xs[0] {
		return ys[0], nil
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1], nil
	}

	// Segment index i such that xs[i] <= x < xs[i+1].
	i := sort.SearchFloat64s(xs, x)
	if xs[i] > x {
		i--
	}

	t := (x - xs[i]) / (xs[i+1] - xs[i])

	if method == InterpLinear {
		return ys[i] + t*(ys[i+1]-ys[i]), nil
	}

	// Hermite needs one neighbor on each side; duplicate endpoints at
	// the grid edges.
	ym1 := ys[i]
	if i > 0 {
		ym1 = ys[i-1]
	}

	y2 := ys[i+1]
	if i+2 < len(ys) {
		y2 = ys[i+2]
	}

	return hermite4(t, ym1, ys[i], ys[i+1], y2), nil
}

// hermite4 computes cubic 4-point interpolation from x0 to x1 at
// fractional position t in [0,1], using neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}
