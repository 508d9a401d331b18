// Package eval scores challenge submissions against injected ground
// truth. Two tasks are evaluated: astrometry (retrieved companion
// offsets) and spectrophotometry (retrieved contrast curves). For both,
// the score is the mean relative distance to the ground truth; the
// closer to zero, the better the submission.
package eval

import (
	"errors"
	"fmt"

	"github.com/exoplanet-imaging-challenge/eidc2/metrics"
	"github.com/exoplanet-imaging-challenge/eidc2/submission"
)

// Errors returned by evaluation.
var (
	ErrCubeCount      = errors.New("eval: submission and ground truth cube counts differ")
	ErrInjectionCount = errors.New("eval: submission and ground truth injection counts differ")
	ErrEstimateCount  = errors.New("eval: submission and ground truth estimate counts differ")
	ErrAstroRow       = errors.New("eval: astrometry rows must hold (dx, dy)")
	ErrNoCubes        = errors.New("eval: nothing to evaluate")
)

// missedDetection is the sentinel participants use to mark a companion
// they did not retrieve. It scores as a maximal miss on both axes.
const missedDetection = -1

type config struct {
	mode metrics.Mode
}

// Option configures scoring.
type Option func(*config)

// WithMode overrides the distance mode. The challenge metric is
// metrics.ModeRelative.
func WithMode(m metrics.Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

func defaultConfig() config {
	return config{mode: metrics.ModeRelative}
}

// Astrometry scores the astrometry task: the mean, over cubes and
// injected companions, of the mean relative distance of the (dx, dy)
// offset estimates. It also returns the per-axis distances for
// reporting.
func Astrometry(gt, sub []submission.Submission, opts ...Option) (float64, []float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := checkPair(gt, sub); err != nil {
		return 0, nil, err
	}

	var all []float64
	cubeScores := make([]float64, 0, len(gt))

	for c := range gt {
		perInjection := make([]float64, 0, gt[c].Injections())

		for i := range gt[c].Estimates {
			gtRow := gt[c].Estimates[i]
			subRow := sub[c].Estimates[i]

			if len(gtRow) < 2 || len(subRow) < 2 {
				return 0, nil, fmt.Errorf("%w: cube %d injection %d", ErrAstroRow, c+1, i+1)
			}

			var d float64
			if subRow[0] == missedDetection && subRow[1] == missedDetection {
				d = 1
				all = append(all, 1, 1)
			} else {
				dists, err := metrics.Distance(gtRow[:2], subRow[:2], nil, cfg.mode)
				if err != nil {
					return 0, nil, err
				}
				d = metrics.Mean(dists)
				all = append(all, dists...)
			}

			perInjection = append(perInjection, d)
		}

		cubeScores = append(cubeScores, metrics.Mean(perInjection))
	}

	return metrics.Mean(cubeScores), all, nil
}

// Photometry scores the spectrophotometry task: the mean, over cubes,
// injected companions, and spectral channels, of the relative contrast
// distance. It also returns the per-channel distances for reporting.
func Photometry(gt, sub []submission.Submission, opts ...Option) (float64, []float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := checkPair(gt, sub); err != nil {
		return 0, nil, err
	}

	var all []float64
	cubeScores := make([]float64, 0, len(gt))

	for c := range gt {
		perInjection := make([]float64, 0, gt[c].Injections())

		for i := range gt[c].Estimates {
			gtCurve := gt[c].Estimates[i]
			subCurve := sub[c].Estimates[i]

			if len(gtCurve) != len(subCurve) {
				return 0, nil, fmt.Errorf("%w: cube %d injection %d: %d vs %d",
					ErrEstimateCount, c+1, i+1, len(subCurve), len(gtCurve))
			}

			dists, err := metrics.Distance(gtCurve, subCurve, nil, cfg.mode)
			if err != nil {
				return 0, nil, err
			}

			perInjection = append(perInjection, metrics.Mean(dists))
			all = append(all, dists...)
		}

		cubeScores = append(cubeScores, metrics.Mean(perInjection))
	}

	return metrics.Mean(cubeScores), all, nil
}

// checkPair verifies that a submission matches the ground truth layout.
func checkPair(gt, sub []submission.Submission) error {
	if len(gt) == 0 {
		return ErrNoCubes
	}
	if len(gt) != len(sub) {
		return fmt.Errorf("%w: %d vs %d", ErrCubeCount, len(sub), len(gt))
	}

	for c := range gt {
		if gt[c].Injections() != sub[c].Injections() {
			return fmt.Errorf("%w: cube %d: %d vs %d",
				ErrInjectionCount, c+1, sub[c].Injections(), gt[c].Injections())
		}
	}

	return nil
}
