package cube

import (
	"errors"
	"fmt"
)

// Errors returned by cube operations.
var (
	ErrBadDimensions = errors.New("cube: dimensions must be positive")
	ErrDataSize      = errors.New("cube: data length does not match dimensions")
	ErrIndexRange    = errors.New("cube: index out of range")
	ErrEmptyFrame    = errors.New("cube: empty frame")
	ErrNotPowerOfTwo = errors.New("cube: frame dimensions must be powers of two for FFT shift")
	ErrUnknownMethod = errors.New("cube: unknown shift method")
	ErrFrameMismatch = errors.New("cube: frame size mismatch")
)

// Cube3D is a spectral cube with axes (channel, y, x), row-major.
type Cube3D struct {
	Channels int
	NY       int
	NX       int
	Data     []float64
}

// NewCube3D allocates a zero-filled cube.
func NewCube3D(channels, ny, nx int) (*Cube3D, error) {
	if channels <= 0 || ny <= 0 || nx <= 0 {
		return nil, ErrBadDimensions
	}

	return &Cube3D{
		Channels: channels,
		NY:       ny,
		NX:       nx,
		Data:     make([]float64, channels*ny*nx),
	}, nil
}

// Cube3DFromData wraps an existing row-major slice without copying.
func Cube3DFromData(channels, ny, nx int, data []float64) (*Cube3D, error) {
	if channels <= 0 || ny <= 0 || nx <= 0 {
		return nil, ErrBadDimensions
	}
	if len(data) != channels*ny*nx {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataSize, len(data), channels*ny*nx)
	}

	return &Cube3D{Channels: channels, NY: ny, NX: nx, Data: data}, nil
}

// Frame returns the (y, x) image of channel ch as a subslice view.
func (c *Cube3D) Frame(ch int) ([]float64, error) {
	if ch < 0 || ch >= c.Channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrIndexRange, ch, c.Channels)
	}

	size := c.NY * c.NX

	return c.Data[ch*size : (ch+1)*size], nil
}

// Clone returns a deep copy of the cube.
func (c *Cube3D) Clone() *Cube3D {
	data := make([]float64, len(c.Data))
	copy(data, c.Data)

	return &Cube3D{Channels: c.Channels, NY: c.NY, NX: c.NX, Data: data}
}

// Cube4D is an IFS master cube with axes (time, channel, y, x), row-major.
type Cube4D struct {
	Frames   int
	Channels int
	NY       int
	NX       int
	Data     []float64
}

// NewCube4D allocates a zero-filled cube.
func NewCube4D(frames, channels, ny, nx int) (*Cube4D, error) {
	if frames <= 0 || channels <= 0 || ny <= 0 || nx <= 0 {
		return nil, ErrBadDimensions
	}

	return &Cube4D{
		Frames:   frames,
		Channels: channels,
		NY:       ny,
		NX:       nx,
		Data:     make([]float64, frames*channels*ny*nx),
	}, nil
}

// Cube4DFromData wraps an existing row-major slice without copying.
func Cube4DFromData(frames, channels, ny, nx int, data []float64) (*Cube4D, error) {
	if frames <= 0 || channels <= 0 || ny <= 0 || nx <= 0 {
		return nil, ErrBadDimensions
	}
	if len(data) != frames*channels*ny*nx {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataSize, len(data), frames*channels*ny*nx)
	}

	return &Cube4D{Frames: frames, Channels: channels, NY: ny, NX: nx, Data: data}, nil
}

// Frame returns the (y, x) image at time t and channel ch as a subslice view.
func (c *Cube4D) Frame(t, ch int) ([]float64, error) {
	if t < 0 || t >= c.Frames {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrIndexRange, t, c.Frames)
	}
	if ch < 0 || ch >= c.Channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrIndexRange, ch, c.Channels)
	}

	size := c.NY * c.NX
	off := (t*c.Channels + ch) * size

	return c.Data[off : off+size], nil
}

// Clone returns a deep copy of the cube.
func (c *Cube4D) Clone() *Cube4D {
	data := make([]float64, len(c.Data))
	copy(data, c.Data)

	return &Cube4D{Frames: c.Frames, Channels: c.Channels, NY: c.NY, NX: c.NX, Data: data}
}

// Center returns the frame center following the (n-1)/2 convention used
// for even- and odd-sized detector images alike.
func (c *Cube4D) Center() (cy, cx float64) {
	return float64(c.NY-1) / 2, float64(c.NX-1) / 2
}
