// Package psf provides wavelength-dependent point-spread function models
// used as injection templates.
package psf

import (
	"errors"
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/exoplanet-imaging-challenge/eidc2/cube"
)

// Errors returned by PSF operations.
var (
	ErrNilCube      = errors.New("psf: nil cube")
	ErrZeroChannel  = errors.New("psf: channel has zero flux")
	ErrChannelCount = errors.New("psf: channel count mismatch")
	ErrTemplateSize = errors.New("psf: template larger than target frame")
)

// Model is a per-channel PSF template. Its channel axis must match the
// spectral axis of the cube it is injected into.
type Model struct {
	cube *cube.Cube3D
}

// New wraps a spectral cube as a PSF model.
func New(c *cube.Cube3D) (*Model, error) {
	if c == nil {
		return nil, ErrNilCube
	}

	return &Model{cube: c}, nil
}

// Channels returns the number of spectral channels.
func (m *Model) Channels() int {
	return m.cube.Channels
}

// Size returns the template frame dimensions.
func (m *Model) Size() (ny, nx int) {
	return m.cube.NY, m.cube.NX
}

// Frame returns the template image of channel ch as a view.
func (m *Model) Frame(ch int) ([]float64, error) {
	return m.cube.Frame(ch)
}

// Cube returns the underlying spectral cube.
func (m *Model) Cube() *cube.Cube3D {
	return m.cube
}

// CheckAgainst verifies that the model can be injected into a cube with
// the given spectral and spatial dimensions.
func (m *Model) CheckAgainst(channels, ny, nx int) error {
	if m.cube.Channels != channels {
		return fmt.Errorf("%w: psf %d, cube %d", ErrChannelCount, m.cube.Channels, channels)
	}
	if m.cube.NY > ny || m.cube.NX > nx {
		return fmt.Errorf("%w: psf %dx%d, frame %dx%d", ErrTemplateSize, m.cube.NY, m.cube.NX, ny, nx)
	}

	return nil
}

// NormalizeFlux scales every channel in place to unit total flux, so a
// companion of flux f is injected by adding f times the template.
func (m *Model) NormalizeFlux() error {
	for ch := 0; ch < m.cube.Channels; ch++ {
		frame, err := m.cube.Frame(ch)
		if err != nil {
			return err
		}

		var sum float64
		for _, v := range frame {
			sum += v
		}

		if sum == 0 {
			return fmt.Errorf("%w: channel %d", ErrZeroChannel, ch)
		}

		vecmath.ScaleBlock(frame, frame, 1/sum)
	}

	return nil
}

// NormalizePeak scales every channel in place to unit peak value.
func (m *Model) NormalizePeak() error {
	for ch := 0; ch < m.cube.Channels; ch++ {
		frame, err := m.cube.Frame(ch)
		if err != nil {
			return err
		}

		var peak float64
		for _, v := range frame {
			if v > peak {
				peak = v
			}
		}

		if peak == 0 {
			return fmt.Errorf("%w: channel %d", ErrZeroChannel, ch)
		}

		vecmath.ScaleBlock(frame, frame, 1/peak)
	}

	return nil
}
