package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exoplanet-imaging-challenge/eidc2/fits"
	"github.com/exoplanet-imaging-challenge/eidc2/inject"
	"github.com/exoplanet-imaging-challenge/eidc2/spectrum"
)

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	os.Exit(m.Run())
}

const companionYAML = `r: 12.5
theta: 120.0
mean_contrast: 1.0e-4
spectral_fwhm_nm: 3.2
shift: hermite
interp: hermite
spectrum:
  wavelength: [1000, 1100, 1200, 1300]
  flux: [1, 2, 3, 4]
transmission:
  radius: [0, 10, 20]
  throughput: [0, 0.5, 1]
`

func writeCompanion(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "companion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCompanion(t *testing.T) {
	spec, opts, err := loadCompanion(writeCompanion(t, companionYAML))
	require.NoError(t, err)

	require.Equal(t, 12.5, spec.R)
	require.Equal(t, 120.0, spec.Theta)
	require.Equal(t, 1.0e-4, spec.MeanContrast)
	require.Equal(t, 3.2, spec.SpectralFWHM)
	require.Len(t, spec.Spectrum.Wavelength, 4)
	require.NotNil(t, spec.Transmission)
	require.Len(t, opts, 2)
}

func TestLoadCompanionInterpSelection(t *testing.T) {
	const body = `r: 2
theta: 0
mean_contrast: 0.01
interp: %s
spectrum:
  wavelength: [1000, 1100, 1200, 1300, 1400]
  flux: [1, 2, 9, 28, 65]
`
	star, err := spectrum.New([]float64{1050, 1150, 1250, 1350}, []float64{1, 1, 1, 1})
	require.NoError(t, err)

	fluxes := func(t *testing.T, method string) []float64 {
		t.Helper()
		spec, opts, err := loadCompanion(writeCompanion(t, fmt.Sprintf(body, method)))
		require.NoError(t, err)
		out, err := inject.Fluxes(star, spec, opts...)
		require.NoError(t, err)
		return out
	}

	linear := fluxes(t, "linear")
	hermite := fluxes(t, "hermite")
	require.NotEqual(t, hermite, linear)

	// "linear" must actually select linear resampling, not fall back to
	// the default.
	spec, _, err := loadCompanion(writeCompanion(t, fmt.Sprintf(body, "linear")))
	require.NoError(t, err)
	want, err := inject.Fluxes(star, spec, inject.WithInterpolation(spectrum.InterpLinear))
	require.NoError(t, err)
	require.Equal(t, want, linear)
}

func TestLoadCompanionRejectsUnknownShift(t *testing.T) {
	body := "r: 1\ntheta: 0\nmean_contrast: 1\nshift: bicubic\nspectrum:\n  wavelength: [1, 2]\n  flux: [1, 1]\n"

	_, _, err := loadCompanion(writeCompanion(t, body))
	require.ErrorContains(t, err, "unknown shift method")
}

func TestFindImageFallsBackToPosition(t *testing.T) {
	images := []fits.Image{
		{Axes: []int{2}, Data: []float64{1, 2}},
		{Axes: []int{2}, Data: []float64{3, 4}},
	}

	img, err := findImage(images, extWavelengths, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, img.Data)

	_, err = findImage(images, extStarFlux, 3)
	require.Error(t, err)
}

func TestPSFFromImage(t *testing.T) {
	img := fits.Image{Axes: []int{3, 3, 2}, Data: make([]float64, 18)}

	model, err := psfFromImage(img)
	require.NoError(t, err)
	require.Equal(t, 2, model.Channels())

	ny, nx := model.Size()
	require.Equal(t, 3, ny)
	require.Equal(t, 3, nx)

	_, err = psfFromImage(fits.Image{Axes: []int{4}, Data: make([]float64, 4)})
	require.Error(t, err)
}

func TestLoadPSFSynthesizesGaussian(t *testing.T) {
	model, err := loadPSF(nil, "", 9, 2.5, 3)
	require.NoError(t, err)
	require.Equal(t, 3, model.Channels())

	_, err = loadPSF(nil, "", 9, 0, 3)
	require.ErrorContains(t, err, "no PSF")
}
