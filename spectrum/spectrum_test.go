package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if _, err := New([]float64{1}, []float64{1}); !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("err = %v, want ErrTooFewSamples", err)
	}
	if _, err := New([]float64{1, 1}, []float64{1, 2}); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("err = %v, want ErrNotIncreasing", err)
	}
	if _, err := New([]float64{2, 1}, []float64{1, 2}); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("err = %v, want ErrNotIncreasing", err)
	}
	if _, err := New([]float64{1, 2, 3}, []float64{1, 2, 3}); err != nil {
		t.Fatalf("New() error = %v", err)
	}
}

func TestTotalFlux(t *testing.T) {
	s := Spectrum{Wavelength: []float64{1, 2, 3}, Flux: []float64{0.5, 1.5, 2.0}}
	if got := s.TotalFlux(); math.Abs(got-4.0) > 1e-12 {
		t.Fatalf("TotalFlux() = %v, want 4.0", got)
	}
}

func TestScaleToContrast(t *testing.T) {
	wl := []float64{1.0, 1.1, 1.2, 1.3}
	star := Spectrum{Wavelength: wl, Flux: []float64{100, 200, 300, 400}}
	comp := Spectrum{Wavelength: wl, Flux: []float64{1, 2, 3, 4}}

	const contrast = 1e-3

	scaled, err := ScaleToContrast(comp, star, contrast)
	if err != nil {
		t.Fatalf("ScaleToContrast() error = %v", err)
	}

	got, err := Contrast(scaled, star)
	if err != nil {
		t.Fatalf("Contrast() error = %v", err)
	}
	if math.Abs(got-contrast) > 1e-12 {
		t.Fatalf("contrast after scaling = %v, want %v", got, contrast)
	}

	// Spectral shape must be preserved.
	ratio := scaled.Flux[3] / scaled.Flux[0]
	if math.Abs(ratio-4) > 1e-12 {
		t.Fatalf("shape ratio = %v, want 4", ratio)
	}

	// Input must not be mutated.
	if comp.Flux[0] != 1 {
		t.Fatalf("input flux mutated: %v", comp.Flux[0])
	}
}

func TestScaleToContrastErrors(t *testing.T) {
	wl := []float64{1.0, 1.1}
	star := Spectrum{Wavelength: wl, Flux: []float64{1, 1}}

	if _, err := ScaleToContrast(star, star, 0); !errors.Is(err, ErrBadContrast) {
		t.Fatalf("err = %v, want ErrBadContrast", err)
	}

	zero := Spectrum{Wavelength: wl, Flux: []float64{0, 0}}
	if _, err := ScaleToContrast(zero, star, 1e-3); !errors.Is(err, ErrZeroFlux) {
		t.Fatalf("err = %v, want ErrZeroFlux", err)
	}

	short := Spectrum{Wavelength: []float64{1, 2, 3}, Flux: []float64{1, 1, 1}}
	if _, err := ScaleToContrast(short, star, 1e-3); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestInterpolateLinear(t *testing.T) {
	xs := []float64{0, 1, 3}
	ys := []float64{0, 10, 30}

	tests := []struct {
		x    float64
		want float64
	}{
		{-1, 0},  // clamp left
		{0, 0},   // grid point
		{0.5, 5}, // mid segment
		{2, 20},  // non-uniform segment
		{3, 30},  // grid point
		{10, 30}, // clamp right
		{0.25, 2.5},
	}
	for _, tc := range tests {
		got, err := Interpolate(xs, ys, tc.x, InterpLinear)
		if err != nil {
			t.Fatalf("Interpolate(%v) error = %v", tc.x, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Interpolate(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestInterpolateHermitePassesThroughSamples(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 2, 5, 4}

	for i, x := range xs {
		got, err := Interpolate(xs, ys, x, InterpHermite)
		if err != nil {
			t.Fatalf("Interpolate(%v) error = %v", x, err)
		}
		if math.Abs(got-ys[i]) > 1e-12 {
			t.Fatalf("Interpolate(%v) = %v, want %v", x, got, ys[i])
		}
	}
}

func TestInterpolateHermiteReproducesQuadratic(t *testing.T) {
	// Hermite 4-point interpolation uses central-difference tangents,
	// which are exact for polynomials up to degree 2 on a uniform grid.
	f := func(x float64) float64 { return 2*x*x - x + 3 }

	xs := make([]float64, 16)
	ys := make([]float64, 16)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = f(xs[i])
	}

	for x := 2.0; x <= 12.0; x += 0.37 {
		got, err := Interpolate(xs, ys, x, InterpHermite)
		if err != nil {
			t.Fatalf("Interpolate(%v) error = %v", x, err)
		}
		if math.Abs(got-f(x)) > 1e-9 {
			t.Fatalf("Interpolate(%v) = %v, want %v", x, got, f(x))
		}
	}
}

func TestInterpolateErrors(t *testing.T) {
	if _, err := Interpolate([]float64{1, 2}, []float64{1}, 1.5, InterpLinear); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if _, err := Interpolate([]float64{1}, []float64{1}, 1, InterpLinear); !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("err = %v, want ErrTooFewSamples", err)
	}
	if _, err := Interpolate([]float64{1, 2}, []float64{1, 2}, 1.5, Interpolation(99)); !errors.Is(err, ErrUnknownInterpolation) {
		t.Fatalf("err = %v, want ErrUnknownInterpolation", err)
	}
}
