// Package submission reads and writes participant submissions for the
// data challenge.
//
// A submission is a ZIP archive with one Multi-Extension FITS file per
// data cube. Each MEF stores, in order: the estimates (primary HDU, one
// row per injected companion), the claimed uncertainties (extension 1),
// and optionally posterior samples for every estimate (extension 2).
// Extension position is authoritative; EXTNAME cards are written for
// human readers but not required on input.
package submission

import (
	"errors"
	"fmt"

	"github.com/exoplanet-imaging-challenge/eidc2/fits"
)

// MEF extension names written for readability.
const (
	extEstimates     = "ESTIMATES"
	extUncertainties = "UNCERTAINTIES"
	extPosteriors    = "POSTERIORS"
)

// Errors returned by submission decoding.
var (
	ErrNoEstimates    = errors.New("submission: file has no estimates HDU")
	ErrShapeMismatch  = errors.New("submission: uncertainties shape differs from estimates")
	ErrPosteriorShape = errors.New("submission: posterior shape differs from estimates")
	ErrRank           = errors.New("submission: estimates must be a 1-D or 2-D array")
	ErrEmpty          = errors.New("submission: empty submission")
)

// Submission holds one cube's results: one row per injected companion.
// Uncertainties, when present, mirror the estimates' shape. Posteriors,
// when present, hold sample vectors per (injection, estimate).
type Submission struct {
	Estimates     [][]float64
	Uncertainties [][]float64
	Posteriors    [][][]float64
}

// Injections returns the number of companion rows.
func (s Submission) Injections() int {
	return len(s.Estimates)
}

// Validate checks internal shape consistency.
func (s Submission) Validate() error {
	if len(s.Estimates) == 0 || len(s.Estimates[0]) == 0 {
		return ErrEmpty
	}

	n := len(s.Estimates[0])
	for _, row := range s.Estimates {
		if len(row) != n {
			return fmt.Errorf("%w: ragged estimates", ErrRank)
		}
	}

	if s.Uncertainties != nil {
		if len(s.Uncertainties) != len(s.Estimates) {
			return ErrShapeMismatch
		}
		for _, row := range s.Uncertainties {
			if len(row) != n {
				return ErrShapeMismatch
			}
		}
	}

	if s.Posteriors != nil {
		if len(s.Posteriors) != len(s.Estimates) {
			return ErrPosteriorShape
		}
		for _, inj := range s.Posteriors {
			if len(inj) != n {
				return ErrPosteriorShape
			}
		}
	}

	return nil
}

// toImages encodes the submission as MEF image HDUs.
func (s Submission) toImages() ([]fits.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	nInj := len(s.Estimates)
	nEst := len(s.Estimates[0])

	images := []fits.Image{{
		Name: extEstimates,
		Axes: []int{nEst, nInj},
		Data: flatten2(s.Estimates),
	}}

	if s.Uncertainties != nil {
		images = append(images, fits.Image{
			Name: extUncertainties,
			Axes: []int{nEst, nInj},
			Data: flatten2(s.Uncertainties),
		})
	}

	if s.Posteriors != nil {
		nSamp := 0
		if nInj > 0 && nEst > 0 {
			nSamp = len(s.Posteriors[0][0])
		}

		flat := make([]float64, 0, nInj*nEst*nSamp)
		for _, inj := range s.Posteriors {
			for _, samples := range inj {
				if len(samples) != nSamp {
					return nil, ErrPosteriorShape
				}
				flat = append(flat, samples...)
			}
		}

		images = append(images, fits.Image{
			Name: extPosteriors,
			Axes: []int{nSamp, nEst, nInj},
			Data: flat,
		})
	}

	return images, nil
}

// fromImages decodes MEF image HDUs into a Submission, honoring the
// read flags.
func fromImages(images []fits.Image, readUncertainties, readPosteriors bool) (Submission, error) {
	if len(images) == 0 {
		return Submission{}, ErrNoEstimates
	}

	est, err := unflatten2(images[0])
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{Estimates: est}

	if readUncertainties && len(images) > 1 {
		unc, err := unflatten2(images[1])
		if err != nil {
			return Submission{}, err
		}
		sub.Uncertainties = unc
	}

	if readPosteriors && len(images) > 2 {
		post, err := unflatten3(images[2])
		if err != nil {
			return Submission{}, err
		}
		sub.Posteriors = post
	}

	if err := sub.Validate(); err != nil {
		return Submission{}, err
	}

	return sub, nil
}

func flatten2(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	out := make([]float64, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		out = append(out, row...)
	}

	return out
}

// unflatten2 reshapes a 1-D or 2-D image into (injection, estimate)
// rows. A 1-D image is a single-injection submission.
func unflatten2(img fits.Image) ([][]float64, error) {
	switch len(img.Axes) {
	case 1:
		row := make([]float64, len(img.Data))
		copy(row, img.Data)

		return [][]float64{row}, nil
	case 2:
		nEst, nInj := img.Axes[0], img.Axes[1]
		out := make([][]float64, nInj)
		for i := range out {
			out[i] = make([]float64, nEst)
			copy(out[i], img.Data[i*nEst:(i+1)*nEst])
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: rank %d", ErrRank, len(img.Axes))
	}
}

func unflatten3(img fits.Image) ([][][]float64, error) {
	if len(img.Axes) != 3 {
		return nil, fmt.Errorf("%w: rank %d", ErrPosteriorShape, len(img.Axes))
	}

	nSamp, nEst, nInj := img.Axes[0], img.Axes[1], img.Axes[2]

	out := make([][][]float64, nInj)
	for i := range out {
		out[i] = make([][]float64, nEst)
		for j := range out[i] {
			off := (i*nEst + j) * nSamp
			out[i][j] = make([]float64, nSamp)
			copy(out[i][j], img.Data[off:off+nSamp])
		}
	}

	return out, nil
}
