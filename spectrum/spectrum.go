package spectrum

import (
	"errors"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectrum operations.
var (
	ErrLengthMismatch = errors.New("spectrum: wavelength and flux length mismatch")
	ErrTooFewSamples  = errors.New("spectrum: need at least two samples")
	ErrNotIncreasing  = errors.New("spectrum: wavelengths must be strictly increasing")
	ErrZeroFlux       = errors.New("spectrum: total flux is zero")
	ErrBadContrast    = errors.New("spectrum: contrast must be positive")
)

// Spectrum is a sampled spectrum: parallel wavelength and flux slices.
// Wavelengths are in microns and must be strictly increasing.
type Spectrum struct {
	Wavelength []float64
	Flux       []float64
}

// New validates and builds a Spectrum. The slices are not copied.
func New(wavelength, flux []float64) (Spectrum, error) {
	if len(wavelength) != len(flux) {
		return Spectrum{}, ErrLengthMismatch
	}
	if len(wavelength) < 2 {
		return Spectrum{}, ErrTooFewSamples
	}
	for i := 1; i < len(wavelength); i++ {
		if wavelength[i] <= wavelength[i-1] {
			return Spectrum{}, ErrNotIncreasing
		}
	}

	return Spectrum{Wavelength: wavelength, Flux: flux}, nil
}

// Len returns the number of spectral samples.
func (s Spectrum) Len() int {
	return len(s.Wavelength)
}

// Clone returns a deep copy of the spectrum.
func (s Spectrum) Clone() Spectrum {
	out := Spectrum{
		Wavelength: make([]float64, len(s.Wavelength)),
		Flux:       make([]float64, len(s.Flux)),
	}
	copy(out.Wavelength, s.Wavelength)
	copy(out.Flux, s.Flux)

	return out
}

// TotalFlux returns the sum of the flux samples using Kahan summation
// for numerical stability.
func (s Spectrum) TotalFlux() float64 {
	var sum, c float64
	for _, x := range s.Flux {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum
}

// Contrast returns the flux ratio companion/star over the full band:
// TotalFlux(companion) / TotalFlux(star).
func Contrast(companion, star Spectrum) (float64, error) {
	den := star.TotalFlux()
	if den == 0 {
		return 0, ErrZeroFlux
	}

	return companion.TotalFlux() / den, nil
}

// ScaleToContrast rescales the companion flux so that its band-integrated
// flux equals meanContrast times the star's band-integrated flux. Both
// spectra must already share the same wavelength grid.
//
// The scale factor is meanContrast * sum(starFlux) / sum(companionFlux).
func ScaleToContrast(companion, star Spectrum, meanContrast float64) (Spectrum, error) {
	if meanContrast <= 0 {
		return Spectrum{}, ErrBadContrast
	}
	if companion.Len() != star.Len() {
		return Spectrum{}, ErrLengthMismatch
	}

	total := companion.TotalFlux()
	if total == 0 {
		return Spectrum{}, ErrZeroFlux
	}

	scale := meanContrast * star.TotalFlux() / total

	out := companion.Clone()
	vecmath.ScaleBlock(out.Flux, companion.Flux, scale)

	return out, nil
}
