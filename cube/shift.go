package cube

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ShiftMethod selects the subpixel shift implementation.
type ShiftMethod int

const (
	// ShiftAuto uses the Fourier shift when both frame dimensions are
	// powers of two and falls back to Hermite interpolation otherwise.
	ShiftAuto ShiftMethod = iota

	// ShiftFFT applies a phase ramp in the Fourier domain. The shift is
	// circular: flux leaving one edge re-enters on the opposite side.
	ShiftFFT

	// ShiftHermite resamples the frame with cubic 4-point interpolation.
	// Samples falling outside the frame are zero.
	ShiftHermite
)

// ShiftFrame shifts a ny-by-nx frame by (dy, dx) pixels and returns a
// new frame. Positive offsets move the image content toward larger
// coordinates.
func ShiftFrame(frame []float64, ny, nx int, dy, dx float64, method ShiftMethod) ([]float64, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}
	if ny <= 0 || nx <= 0 || len(frame) != ny*nx {
		return nil, fmt.Errorf("%w: len %d for %dx%d", ErrFrameMismatch, len(frame), ny, nx)
	}

	if dy == 0 && dx == 0 {
		out := make([]float64, len(frame))
		copy(out, frame)

		return out, nil
	}

	switch method {
	case ShiftAuto:
		if isPowerOfTwo(ny) && isPowerOfTwo(nx) {
			return shiftFFT(frame, ny, nx, dy, dx)
		}

		return shiftHermite(frame, ny, nx, dy, dx), nil
	case ShiftFFT:
		if !isPowerOfTwo(ny) || !isPowerOfTwo(nx) {
			return nil, fmt.Errorf("%w: %dx%d", ErrNotPowerOfTwo, ny, nx)
		}

		return shiftFFT(frame, ny, nx, dy, dx)
	case ShiftHermite:
		return shiftHermite(frame, ny, nx, dy, dx), nil
	default:
		return nil, ErrUnknownMethod
	}
}

// shiftFFT performs the shift as a phase ramp applied to the 2-D
// spectrum of the frame: row FFTs, column FFTs, per-bin multiply by
// exp(-2*pi*i*(u*dx/nx + v*dy/ny)), then the inverse transforms.
func shiftFFT(frame []float64, ny, nx int, dy, dx float64) ([]float64, error) {
	rowPlan, err := algofft.NewPlan64(nx)
	if err != nil {
		return nil, fmt.Errorf("cube: failed to create row FFT plan: %w", err)
	}

	colPlan, err := algofft.NewPlan64(ny)
	if err != nil {
		return nil, fmt.Errorf("cube: failed to create column FFT plan: %w", err)
	}

	grid := make([]complex128, ny*nx)
	for i, v := range frame {
		grid[i] = complex(v, 0)
	}

	// Forward transform: rows, then columns.
	for y := 0; y < ny; y++ {
		row := grid[y*nx : (y+1)*nx]
		if err := rowPlan.Forward(row, row); err != nil {
			return nil, fmt.Errorf("cube: row FFT failed: %w", err)
		}
	}

	col := make([]complex128, ny)

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			col[y] = grid[y*nx+x]
		}
		if err := colPlan.Forward(col, col); err != nil {
			return nil, fmt.Errorf("cube: column FFT failed: %w", err)
		}
		for y := 0; y < ny; y++ {
			grid[y*nx+x] = col[y]
		}
	}

	// Phase ramp with signed frequencies.
	for v := 0; v < ny; v++ {
		fv := signedFreq(v, ny)
		for u := 0; u < nx; u++ {
			fu := signedFreq(u, nx)
			phase := -2 * math.Pi * (fu*dx/float64(nx) + fv*dy/float64(ny))
			grid[v*nx+u] *= complex(math.Cos(phase), math.Sin(phase))
		}
	}

	// Inverse transform: columns, then rows.
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			col[y] = grid[y*nx+x]
		}
		if err := colPlan.Inverse(col, col); err != nil {
			return nil, fmt.Errorf("cube: column inverse FFT failed: %w", err)
		}
		for y := 0; y < ny; y++ {
			grid[y*nx+x] = col[y]
		}
	}

	out := make([]float64, ny*nx)

	for y := 0; y < ny; y++ {
		row := grid[y*nx : (y+1)*nx]
		if err := rowPlan.Inverse(row, row); err != nil {
			return nil, fmt.Errorf("cube: row inverse FFT failed: %w", err)
		}
		for x := 0; x < nx; x++ {
			out[y*nx+x] = real(row[x])
		}
	}

	return out, nil
}

// shiftHermite resamples the frame at (x-dx, y-dy) using separable
// cubic 4-point interpolation with zero fill outside the frame.
func shiftHermite(frame []float64, ny, nx int, dy, dx float64) []float64 {
	out := make([]float64, ny*nx)

	var rows [4]float64

	for y := 0; y < ny; y++ {
		sy := float64(y) - dy
		y0 := int(math.Floor(sy))
		fy := sy - float64(y0)

		for x := 0; x < nx; x++ {
			sx := float64(x) - dx
			x0 := int(math.Floor(sx))
			fx := sx - float64(x0)

			// Skip pixels whose whole 4x4 support is outside the frame.
			if x0 < -2 || x0 > nx || y0 < -2 || y0 > ny {
				continue
			}

			for j := 0; j < 4; j++ {
				yj := y0 - 1 + j
				rows[j] = hermite4(fx,
					sampleAt(frame, ny, nx, yj, x0-1),
					sampleAt(frame, ny, nx, yj, x0),
					sampleAt(frame, ny, nx, yj, x0+1),
					sampleAt(frame, ny, nx, yj, x0+2))
			}

			out[y*nx+x] = hermite4(fy, rows[0], rows[1], rows[2], rows[3])
		}
	}

	return out
}

// sampleAt returns frame[y][x] or 0 when outside the frame.
func sampleAt(frame []float64, ny, nx, y, x int) float64 {
	if y < 0 || y >= ny || x < 0 || x >= nx {
		return 0
	}

	return frame[y*nx+x]
}

// hermite4 computes cubic 4-point interpolation from x0 to x1 at
// fractional position t, using neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}

// signedFreq maps FFT bin k of an n-point transform to its signed
// frequency index.
func signedFreq(k, n int) float64 {
	if k > n/2 {
		return float64(k - n)
	}

	return float64(k)
}

// isPowerOfTwo returns true if n is a power of 2.
func isPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
