package psf

import (
	"math"

	"github.com/exoplanet-imaging-challenge/eidc2/cube"
)

// twoSqrtTwoLn2 converts a Gaussian FWHM to its standard deviation.
const twoSqrtTwoLn2 = 2.3548200450309493

// Gaussian builds a synthetic circular Gaussian PSF model with the given
// per-channel FWHM values (in pixels). The template is size-by-size
// pixels, centered at (size-1)/2, and flux-normalized per channel.
//
// Real challenge data ships measured PSF cubes; this generator backs
// tests, mock data, and quick-look experiments.
func Gaussian(size int, fwhm []float64) (*Model, error) {
	c, err := cube.NewCube3D(len(fwhm), size, size)
	if err != nil {
		return nil, err
	}

	center := float64(size-1) / 2

	for ch, w := range fwhm {
		sigma := w / twoSqrtTwoLn2

		frame, err := c.Frame(ch)
		if err != nil {
			return nil, err
		}

		for y := 0; y < size; y++ {
			dy := float64(y) - center
			for x := 0; x < size; x++ {
				dx := float64(x) - center
				frame[y*size+x] = math.Exp(-0.5 * (dx*dx + dy*dy) / (sigma * sigma))
			}
		}
	}

	m, err := New(c)
	if err != nil {
		return nil, err
	}
	if err := m.NormalizeFlux(); err != nil {
		return nil, err
	}

	return m, nil
}
