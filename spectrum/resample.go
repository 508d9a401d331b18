package spectrum

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// twoSqrtTwoLn2 converts a Gaussian FWHM to its standard deviation.
const twoSqrtTwoLn2 = 2.3548200450309493

type config struct {
	fwhmNm float64
	interp Interpolation
}

// Option configures Resample.
type Option func(*config)

// WithFWHM sets the instrument spectral FWHM in nanometers. The model
// spectrum is convolved with a Gaussian line-spread function of this
// width before resampling. A value <= 0 disables the convolution.
func WithFWHM(nm float64) Option {
	return func(cfg *config) {
		cfg.fwhmNm = nm
	}
}

// WithInterpolation selects the interpolation method used to evaluate
// the model spectrum on the instrument grid.
func WithInterpolation(method Interpolation) Option {
	return func(cfg *config) {
		cfg.interp = method
	}
}

func defaultConfig() config {
	return config{interp: InterpHermite}
}

// Resample projects a model spectrum onto the instrument wavelength grid.
//
// If a spectral FWHM is configured, the model is first smoothed with a
// Gaussian line-spread function so that narrow model features are not
// aliased onto the coarser instrument sampling. Instrument wavelengths
// outside the model range clamp to the nearest model sample.
func Resample(instrWl []float64, model Spectrum, opts ...Option) (Spectrum, error) {
	if len(instrWl) < 2 {
		return Spectrum{}, ErrTooFewSamples
	}
	if _, err := New(model.Wavelength, model.Flux); err != nil {
		return Spectrum{}, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	flux := model.Flux
	if cfg.fwhmNm > 0 {
		flux = smoothGaussian(model.Wavelength, model.Flux, cfg.fwhmNm)
	}

	out := Spectrum{
		Wavelength: make([]float64, len(instrWl)),
		Flux:       make([]float64, len(instrWl)),
	}
	copy(out.Wavelength, instrWl)

	for i, wl := range instrWl {
		v, err := Interpolate(model.Wavelength, flux, wl, cfg.interp)
		if err != nil {
			return Spectrum{}, err
		}

		out.Flux[i] = v
	}

	return out, nil
}

// smoothGaussian convolves flux with a Gaussian kernel of the given FWHM
// (nanometers), sampled at the median wavelength step of the grid. The
// signal is edge-replicated before convolution so the band edges keep
// their flux level.
func smoothGaussian(wl, flux []float64, fwhmNm float64) []float64 {
	sigma := fwhmNm / 1000 / twoSqrtTwoLn2 // microns

	step := medianStep(wl)
	if step <= 0 {
		out := make([]float64, len(flux))
		copy(out, flux)

		return out
	}

	// Truncate the kernel at 4 sigma.
	half := int(math.Ceil(4 * sigma / step))
	if half < 1 {
		out := make([]float64, len(flux))
		copy(out, flux)

		return out
	}

	kernel := gaussianKernel(half, sigma/step)

	n := len(flux)
	m := len(kernel)

	// Edge-replicated input.
	padded := make([]float64, n+2*half)
	for i := range padded {
		switch {
		case i < half:
			padded[i] = flux[0]
		case i >= half+n:
			padded[i] = flux[n-1]
		default:
			padded[i] = flux[i-half]
		}
	}

	// Full linear convolution via scale-and-accumulate blocks.
	full := make([]float64, len(padded)+m-1)
	tmp := make([]float64, m)

	for i, x := range padded {
		vecmath.ScaleBlock(tmp, kernel, x)
		vecmath.AddBlockInPlace(full[i:i+m], tmp)
	}

	// Sample i of the original signal lands at full[i + 2*half].
	out := make([]float64, n)
	copy(out, full[2*half:2*half+n])

	return out
}

// gaussianKernel returns a unit-sum Gaussian kernel with 2*half+1 taps
// and standard deviation sigma expressed in taps.
func gaussianKernel(half int, sigma float64) []float64 {
	kernel := make([]float64, 2*half+1)

	var sum float64
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
		sum += kernel[i]
	}

	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}

// medianStep returns the median spacing of a strictly increasing grid.
func medianStep(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	steps := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		steps[i-1] = xs[i] - xs[i-1]
	}

	sortFloats(steps)

	mid := len(steps) / 2
	if len(steps)%2 == 0 {
		return 0.5 * (steps[mid-1] + steps[mid])
	}

	return steps[mid]
}

// sortFloats is a small insertion sort; wavelength grids are short and
// this avoids pulling in sort.Slice allocations in a hot path.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
