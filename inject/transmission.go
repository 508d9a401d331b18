package inject

import (
	"errors"
	"fmt"

	"github.com/exoplanet-imaging-challenge/eidc2/spectrum"
)

// Errors returned by transmission handling.
var (
	ErrTransmissionShape = errors.New("inject: transmission radius and throughput length mismatch")
	ErrTransmissionRange = errors.New("inject: transmission throughput outside [0,1]")
)

// Transmission is the radial off-axis throughput of a coronagraph:
// Radius in pixels from the star, Throughput in [0,1]. Radii must be
// strictly increasing.
type Transmission struct {
	Radius     []float64
	Throughput []float64
}

// NewTransmission validates and builds a transmission profile.
func NewTransmission(radius, throughput []float64) (*Transmission, error) {
	if len(radius) != len(throughput) {
		return nil, ErrTransmissionShape
	}

	for i, v := range throughput {
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: %v at index %d", ErrTransmissionRange, v, i)
		}
	}

	// Grid validity (length, monotonicity) is checked by the
	// interpolation layer at lookup time via the same rules as spectra.
	if _, err := spectrum.New(radius, throughput); err != nil {
		return nil, fmt.Errorf("inject: invalid transmission profile: %w", err)
	}

	return &Transmission{Radius: radius, Throughput: throughput}, nil
}

// At returns the throughput at radial separation r (pixels), linearly
// interpolated and clamped to the profile's endpoints.
func (t *Transmission) At(r float64) (float64, error) {
	return spectrum.Interpolate(t.Radius, t.Throughput, r, spectrum.InterpLinear)
}
