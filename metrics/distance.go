// Package metrics provides the distance metrics used to score retrieved
// companion parameters against injected ground truth. The closer a
// distance is to zero, the better the estimation.
package metrics

import (
	"errors"
	"math"
)

// Errors returned by distance computations.
var (
	ErrShapeMismatch  = errors.New("metrics: ground truth and estimates must have the same length")
	ErrErrorsShape    = errors.New("metrics: uncertainties must have the same length as estimates")
	ErrErrorsRequired = errors.New("metrics: normalized mode requires uncertainties")
	ErrUnknownMode    = errors.New("metrics: unknown distance mode")
)

// Mode selects how the elementwise distance is computed.
type Mode int

const (
	// ModeRelative is |gt - est| / |gt|, the challenge metric.
	ModeRelative Mode = iota

	// ModeAbsolute is |gt - est|.
	ModeAbsolute

	// ModeNormalized is |gt - est| / err, the distance in units of the
	// claimed uncertainty.
	ModeNormalized
)

// Distance computes the elementwise distance between ground truths and
// estimates. errs may be nil except in ModeNormalized. A relative
// distance against a zero ground truth is +Inf, and a normalized
// distance with a zero claimed uncertainty is +Inf.
func Distance(gts, estimates, errs []float64, mode Mode) ([]float64, error) {
	if len(estimates) != len(gts) {
		return nil, ErrShapeMismatch
	}
	if errs != nil && len(errs) != len(estimates) {
		return nil, ErrErrorsShape
	}

	out := make([]float64, len(gts))

	switch mode {
	case ModeRelative:
		for i := range gts {
			out[i] = math.Abs(gts[i]-estimates[i]) / math.Abs(gts[i])
		}
	case ModeAbsolute:
		for i := range gts {
			out[i] = math.Abs(gts[i] - estimates[i])
		}
	case ModeNormalized:
		if errs == nil {
			return nil, ErrErrorsRequired
		}
		for i := range gts {
			out[i] = math.Abs(gts[i]-estimates[i]) / math.Abs(errs[i])
		}
	default:
		return nil, ErrUnknownMode
	}

	return out, nil
}

// Scalar computes the distance between a single ground truth and
// estimate in the given mode, without uncertainty support.
func Scalar(gt, estimate float64, mode Mode) (float64, error) {
	d, err := Distance([]float64{gt}, []float64{estimate}, nil, mode)
	if err != nil {
		return 0, err
	}

	return d[0], nil
}

// Mean returns the arithmetic mean of a distance vector. NaN inputs
// propagate, as in the underlying arithmetic.
func Mean(dists []float64) float64 {
	if len(dists) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, v := range dists {
		sum += v
	}

	return sum / float64(len(dists))
}
