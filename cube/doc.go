// Package cube provides dense IFU data cubes and frame-level spatial
// operations.
//
// Two layouts are used throughout the toolkit:
//
//   - Cube3D: (channel, y, x), e.g. a wavelength-dependent PSF
//   - Cube4D: (time, channel, y, x), an IFS master cube
//
// Data is stored row-major in a single float64 slice; Frame accessors
// return subslice views, not copies.
//
// ShiftFrame moves a frame by a subpixel offset. Two strategies are
// available: a Fourier phase-ramp shift (exact for band-limited signals,
// requires power-of-two frame dimensions) and a cubic Hermite spatial
// shift (works for any size, zero fill outside the frame). ShiftAuto
// picks the Fourier path whenever the frame dimensions allow it.
package cube
