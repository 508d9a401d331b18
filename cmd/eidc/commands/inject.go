package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/exoplanet-imaging-challenge/eidc2/cube"
	"github.com/exoplanet-imaging-challenge/eidc2/fits"
	"github.com/exoplanet-imaging-challenge/eidc2/inject"
	"github.com/exoplanet-imaging-challenge/eidc2/psf"
	"github.com/exoplanet-imaging-challenge/eidc2/spectrum"
)

// Extension names expected in a challenge dataset MEF. The primary HDU
// carries the 4D science cube; lookups fall back to HDU position when
// no EXTNAME cards are present.
const (
	extScience     = "SCIENCE"
	extWavelengths = "WAVELENGTHS"
	extParangles   = "PARANGLES"
	extStarFlux    = "STARFLUX"
	extPSF         = "PSF"
)

// companionFile is the YAML description of the companion to inject.
type companionFile struct {
	R            float64 `yaml:"r"`
	Theta        float64 `yaml:"theta"`
	MeanContrast float64 `yaml:"mean_contrast"`

	// SpectralFWHM is the instrument spectral resolution in nm; 0 skips
	// the smoothing step.
	SpectralFWHM float64 `yaml:"spectral_fwhm_nm"`

	// Shift selects the subpixel placement method: auto, fft or hermite.
	Shift string `yaml:"shift"`

	// Interp selects the spectral resampling method: linear or hermite.
	Interp string `yaml:"interp"`

	Spectrum struct {
		Wavelength []float64 `yaml:"wavelength"`
		Flux       []float64 `yaml:"flux"`
	} `yaml:"spectrum"`

	Transmission struct {
		Radius     []float64 `yaml:"radius"`
		Throughput []float64 `yaml:"throughput"`
	} `yaml:"transmission"`
}

func injectCmd() *cobra.Command {
	var (
		cubePath string
		specPath string
		outPath  string
		psfPath  string

		gaussFWHM float64
		gaussSize int
	)

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inject a synthetic companion into an IFS cube",
		Long: `Inject reads a challenge dataset MEF (science cube, wavelength grid,
parallactic angles, star flux and optionally an off-axis PSF), scales the
companion spectrum from the YAML description, and writes a copy of the
dataset with the companion injected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := readImages(cubePath)
			if err != nil {
				return err
			}

			sci, err := findImage(images, extScience, 0)
			if err != nil {
				return err
			}
			if len(sci.Axes) != 4 {
				return fmt.Errorf("science cube has %d axes, want 4", len(sci.Axes))
			}
			c, err := cube.Cube4DFromData(sci.Axes[3], sci.Axes[2], sci.Axes[1], sci.Axes[0], sci.Data)
			if err != nil {
				return err
			}

			wl, err := findImage(images, extWavelengths, 1)
			if err != nil {
				return err
			}
			derot, err := findImage(images, extParangles, 2)
			if err != nil {
				return err
			}
			starFlux, err := findImage(images, extStarFlux, 3)
			if err != nil {
				return err
			}
			star, err := spectrum.New(wl.Data, starFlux.Data)
			if err != nil {
				return err
			}

			model, err := loadPSF(images, psfPath, gaussSize, gaussFWHM, c.Channels)
			if err != nil {
				return err
			}

			spec, opts, err := loadCompanion(specPath)
			if err != nil {
				return err
			}

			logger.Info("injecting companion",
				zap.String("cube", cubePath),
				zap.Float64("r", spec.R),
				zap.Float64("theta", spec.Theta),
				zap.Float64("mean_contrast", spec.MeanContrast),
				zap.Int("frames", c.Frames),
				zap.Int("channels", c.Channels),
			)

			injected, err := inject.IntoCube(c, derot.Data, model, star, spec, opts...)
			if err != nil {
				return err
			}

			// Pass the calibration extensions through unchanged.
			out := make([]fits.Image, len(images))
			copy(out, images)
			out[0] = fits.Image{Name: sci.Name, Axes: sci.Axes, Data: injected.Data}

			if err := writeImages(outPath, out); err != nil {
				return err
			}

			logger.Info("wrote injected cube", zap.String("path", outPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&cubePath, "cube", "", "dataset MEF with science cube and calibrations (required)")
	cmd.Flags().StringVar(&specPath, "spec", "", "YAML companion description (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "output FITS path (required)")
	cmd.Flags().StringVar(&psfPath, "psf", "", "FITS file with an off-axis PSF cube, overriding the dataset PSF extension")
	cmd.Flags().Float64Var(&gaussFWHM, "gaussian-fwhm", 0, "synthesize a Gaussian PSF with this FWHM in pixels when no PSF is available")
	cmd.Flags().IntVar(&gaussSize, "gaussian-size", 31, "side length of the synthesized Gaussian PSF")

	_ = cmd.MarkFlagRequired("cube")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// loadPSF resolves the PSF model: an explicit FITS file wins, then a PSF
// extension in the dataset, then a synthesized Gaussian.
func loadPSF(images []fits.Image, psfPath string, gaussSize int, gaussFWHM float64, channels int) (*psf.Model, error) {
	if psfPath != "" {
		ext, err := readImages(psfPath)
		if err != nil {
			return nil, err
		}
		return psfFromImage(ext[0])
	}

	for _, img := range images {
		if img.Name == extPSF {
			return psfFromImage(img)
		}
	}

	if gaussFWHM <= 0 {
		return nil, fmt.Errorf("dataset carries no PSF extension; pass --psf or --gaussian-fwhm")
	}

	fwhm := make([]float64, channels)
	for i := range fwhm {
		fwhm[i] = gaussFWHM
	}
	return psf.Gaussian(gaussSize, fwhm)
}

func psfFromImage(img fits.Image) (*psf.Model, error) {
	switch len(img.Axes) {
	case 2:
		c, err := cube.Cube3DFromData(1, img.Axes[1], img.Axes[0], img.Data)
		if err != nil {
			return nil, err
		}
		return psf.New(c)
	case 3:
		c, err := cube.Cube3DFromData(img.Axes[2], img.Axes[1], img.Axes[0], img.Data)
		if err != nil {
			return nil, err
		}
		return psf.New(c)
	default:
		return nil, fmt.Errorf("psf image has %d axes, want 2 or 3", len(img.Axes))
	}
}

// loadCompanion parses the YAML companion description into an injection
// spec and its options.
func loadCompanion(path string) (inject.Spec, []inject.Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return inject.Spec{}, nil, fmt.Errorf("reading companion spec: %w", err)
	}

	var cf companionFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return inject.Spec{}, nil, fmt.Errorf("parsing companion spec: %w", err)
	}

	model, err := spectrum.New(cf.Spectrum.Wavelength, cf.Spectrum.Flux)
	if err != nil {
		return inject.Spec{}, nil, err
	}

	spec := inject.Spec{
		R:            cf.R,
		Theta:        cf.Theta,
		MeanContrast: cf.MeanContrast,
		Spectrum:     model,
		SpectralFWHM: cf.SpectralFWHM,
	}

	if len(cf.Transmission.Radius) > 0 {
		tr, err := inject.NewTransmission(cf.Transmission.Radius, cf.Transmission.Throughput)
		if err != nil {
			return inject.Spec{}, nil, err
		}
		spec.Transmission = tr
	}

	var opts []inject.Option

	switch strings.ToLower(cf.Shift) {
	case "", "auto":
	case "fft":
		opts = append(opts, inject.WithShiftMethod(cube.ShiftFFT))
	case "hermite":
		opts = append(opts, inject.WithShiftMethod(cube.ShiftHermite))
	default:
		return inject.Spec{}, nil, fmt.Errorf("unknown shift method %q", cf.Shift)
	}

	switch strings.ToLower(cf.Interp) {
	case "":
	case "linear":
		opts = append(opts, inject.WithInterpolation(spectrum.InterpLinear))
	case "hermite":
		opts = append(opts, inject.WithInterpolation(spectrum.InterpHermite))
	default:
		return inject.Spec{}, nil, fmt.Errorf("unknown interpolation %q", cf.Interp)
	}

	return spec, opts, nil
}

// findImage locates an image HDU by EXTNAME, falling back to its
// position for files written without extension names.
func findImage(images []fits.Image, name string, fallback int) (fits.Image, error) {
	for _, img := range images {
		if img.Name == name {
			return img, nil
		}
	}
	if fallback < len(images) {
		return images[fallback], nil
	}
	return fits.Image{}, fmt.Errorf("no %s extension and fewer than %d HDUs", name, fallback+1)
}

func readImages(path string) ([]fits.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return fits.ReadAll(f)
}

func writeImages(path string, images []fits.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return fits.Write(f, images)
}
