package inject

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/exoplanet-imaging-challenge/eidc2/cube"
	"github.com/exoplanet-imaging-challenge/eidc2/psf"
	"github.com/exoplanet-imaging-challenge/eidc2/spectrum"
)

// Errors returned by injection.
var (
	ErrNilCube      = errors.New("inject: nil cube")
	ErrNilPSF       = errors.New("inject: nil psf model")
	ErrDerotLength  = errors.New("inject: derotation angles must match the time axis")
	ErrStarChannels = errors.New("inject: star spectrum must match the spectral axis")
	ErrNegativeR    = errors.New("inject: radial separation must be >= 0")
)

// Spec describes a companion to inject: position in the derotated frame,
// contrast, and spectrum.
type Spec struct {
	// R is the radial separation from the star in pixels.
	R float64

	// Theta is the trigonometric position angle in degrees, counted
	// from the positive x axis in the derotated (North up) frame.
	Theta float64

	// MeanContrast is the requested band-averaged companion/star flux
	// ratio used to scale the companion spectrum.
	MeanContrast float64

	// Spectrum is the companion model spectrum. It does not need to be
	// sampled on the instrument wavelength grid.
	Spectrum spectrum.Spectrum

	// SpectralFWHM is the instrument spectral FWHM in nanometers.
	// When > 0 the model spectrum is convolved to this resolution
	// before resampling.
	SpectralFWHM float64

	// Transmission is the optional radial coronagraph throughput.
	Transmission *Transmission
}

type config struct {
	shift  cube.ShiftMethod
	interp spectrum.Interpolation
}

// Option configures IntoCube.
type Option func(*config)

// WithShiftMethod selects the subpixel shift used to place the PSF.
func WithShiftMethod(m cube.ShiftMethod) Option {
	return func(cfg *config) {
		cfg.shift = m
	}
}

// WithInterpolation selects the spectral interpolation method.
func WithInterpolation(m spectrum.Interpolation) Option {
	return func(cfg *config) {
		cfg.interp = m
	}
}

func defaultConfig() config {
	return config{shift: cube.ShiftAuto, interp: spectrum.InterpHermite}
}

// Fluxes computes the per-channel companion flux to inject: the model
// spectrum convolved to the instrument resolution, resampled onto the
// star's wavelength grid, scaled to the requested mean contrast, and
// attenuated by the coronagraph transmission at the companion's separation.
func Fluxes(star spectrum.Spectrum, spec Spec, opts ...Option) ([]float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	res, err := spectrum.Resample(star.Wavelength, spec.Spectrum,
		spectrum.WithFWHM(spec.SpectralFWHM),
		spectrum.WithInterpolation(cfg.interp))
	if err != nil {
		return nil, fmt.Errorf("inject: resampling companion spectrum: %w", err)
	}

	scaled, err := spectrum.ScaleToContrast(res, star, spec.MeanContrast)
	if err != nil {
		return nil, fmt.Errorf("inject: scaling companion spectrum: %w", err)
	}

	flux := scaled.Flux

	if spec.Transmission != nil {
		th, err := spec.Transmission.At(spec.R)
		if err != nil {
			return nil, fmt.Errorf("inject: transmission lookup: %w", err)
		}

		vecmath.ScaleBlock(flux, flux, th)
	}

	return flux, nil
}

// Position returns the companion position in a frame with derotation
// angle derot (degrees): the injection angle is theta - derot, measured
// from the positive x axis around center (cy, cx).
func Position(cy, cx, r, theta, derot float64) (y, x float64) {
	a := (theta - derot) * math.Pi / 180

	return cy + r*math.Sin(a), cx + r*math.Cos(a)
}

// IntoCube injects the companion described by spec into every frame of
// the master cube and returns a new cube; the input is not modified.
//
// derot holds one derotation angle (degrees) per time frame. The PSF
// model must be flux-normalized per channel and match the cube's
// spectral axis. star is the stellar spectrum measured by the IFU, on
// the instrument wavelength grid.
func IntoCube(c *cube.Cube4D, derot []float64, model *psf.Model, star spectrum.Spectrum, spec Spec, opts ...Option) (*cube.Cube4D, error) {
	if c == nil {
		return nil, ErrNilCube
	}
	if model == nil {
		return nil, ErrNilPSF
	}
	if len(derot) != c.Frames {
		return nil, fmt.Errorf("%w: %d angles for %d frames", ErrDerotLength, len(derot), c.Frames)
	}
	if star.Len() != c.Channels {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrStarChannels, star.Len(), c.Channels)
	}
	if spec.R < 0 {
		return nil, ErrNegativeR
	}
	if err := model.CheckAgainst(c.Channels, c.NY, c.NX); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	flux, err := Fluxes(star, spec, opts...)
	if err != nil {
		return nil, err
	}

	out := c.Clone()
	cy, cx := c.Center()
	pny, pnx := model.Size()
	pcy := float64(pny-1) / 2
	pcx := float64(pnx-1) / 2

	scaled := make([]float64, pny*pnx)

	for t := 0; t < c.Frames; t++ {
		y, x := Position(cy, cx, spec.R, spec.Theta, derot[t])

		// Split the template placement into an integer corner offset
		// and a subpixel shift of the template itself.
		y0 := y - pcy
		x0 := x - pcx
		iy := int(math.Floor(y0))
		ix := int(math.Floor(x0))
		fy := y0 - float64(iy)
		fx := x0 - float64(ix)

		for ch := 0; ch < c.Channels; ch++ {
			template, err := model.Frame(ch)
			if err != nil {
				return nil, err
			}

			shifted, err := cube.ShiftFrame(template, pny, pnx, fy, fx, cfg.shift)
			if err != nil {
				return nil, fmt.Errorf("inject: shifting psf template: %w", err)
			}

			vecmath.ScaleBlock(scaled, shifted, flux[ch])

			frame, err := out.Frame(t, ch)
			if err != nil {
				return nil, err
			}

			addPatch(frame, c.NY, c.NX, scaled, pny, pnx, iy, ix)
		}
	}

	return out, nil
}

// addPatch accumulates a pny-by-pnx patch into a ny-by-nx frame with its
// top-left corner at (iy, ix), clipping rows and columns that fall
// outside the frame.
func addPatch(frame []float64, ny, nx int, patch []float64, pny, pnx, iy, ix int) {
	for py := 0; py < pny; py++ {
		y := iy + py
		if y < 0 || y >= ny {
			continue
		}

		xlo := 0
		if ix < 0 {
			xlo = -ix
		}

		xhi := pnx
		if ix+pnx > nx {
			xhi = nx - ix
		}

		if xlo >= xhi {
			continue
		}

		dst := frame[y*nx+ix+xlo : y*nx+ix+xhi]
		src := patch[py*pnx+xlo : py*pnx+xhi]

		vecmath.AddBlockInPlace(dst, src)
	}
}
