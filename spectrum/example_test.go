package spectrum_test

import (
	"fmt"

	"github.com/exoplanet-imaging-challenge/eidc2/spectrum"
)

func ExampleResample() {
	model := spectrum.Spectrum{
		Wavelength: []float64{1.0, 1.1, 1.2, 1.3, 1.4},
		Flux:       []float64{10, 12, 14, 16, 18},
	}
	out, _ := spectrum.Resample([]float64{1.05, 1.15, 1.25}, model,
		spectrum.WithInterpolation(spectrum.InterpLinear))
	fmt.Printf("%.0f\n", out.Flux)
	// Output:
	// [11 13 15]
}

func ExampleScaleToContrast() {
	wl := []float64{1.0, 1.1, 1.2}
	star := spectrum.Spectrum{Wavelength: wl, Flux: []float64{1000, 1000, 1000}}
	companion := spectrum.Spectrum{Wavelength: wl, Flux: []float64{1, 2, 3}}

	scaled, _ := spectrum.ScaleToContrast(companion, star, 1e-2)
	c, _ := spectrum.Contrast(scaled, star)
	fmt.Printf("contrast=%.3g\n", c)
	// Output:
	// contrast=0.01
}
