package submission

import (
	"errors"
	"math/rand"
)

// ErrMockConfig indicates an invalid mock generation configuration.
var ErrMockConfig = errors.New("submission: invalid mock configuration")

// MockConfig drives mock submission generation. Estimates and
// uncertainties are drawn uniformly within their bounds; posterior
// samples are drawn from a Gaussian centered on each estimate with the
// matching uncertainty as its width.
type MockConfig struct {
	Cubes            int
	Injections       int
	Estimates        int
	EstimateBounds   [2]float64
	ErrorBounds      [2]float64
	PosteriorSamples int
	Seed             int64
}

// DefaultMockConfig mirrors the historical mock generator defaults.
func DefaultMockConfig() MockConfig {
	return MockConfig{
		Cubes:            1,
		Injections:       1,
		Estimates:        2,
		EstimateBounds:   [2]float64{0, 1},
		ErrorBounds:      [2]float64{0, 2},
		PosteriorSamples: 1000,
		Seed:             1,
	}
}

// Mock generates deterministic mock submissions for end-to-end testing
// of the evaluation pipeline.
func Mock(cfg MockConfig) ([]Submission, error) {
	if cfg.Cubes <= 0 || cfg.Injections <= 0 || cfg.Estimates <= 0 {
		return nil, ErrMockConfig
	}
	if cfg.EstimateBounds[1] < cfg.EstimateBounds[0] || cfg.ErrorBounds[1] < cfg.ErrorBounds[0] {
		return nil, ErrMockConfig
	}
	if cfg.PosteriorSamples < 0 {
		return nil, ErrMockConfig
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}

	out := make([]Submission, cfg.Cubes)

	for c := range out {
		sub := Submission{
			Estimates:     make([][]float64, cfg.Injections),
			Uncertainties: make([][]float64, cfg.Injections),
		}
		if cfg.PosteriorSamples > 0 {
			sub.Posteriors = make([][][]float64, cfg.Injections)
		}

		for i := 0; i < cfg.Injections; i++ {
			est := make([]float64, cfg.Estimates)
			unc := make([]float64, cfg.Estimates)

			for j := range est {
				est[j] = uniform(cfg.EstimateBounds[0], cfg.EstimateBounds[1])
				unc[j] = uniform(cfg.ErrorBounds[0], cfg.ErrorBounds[1])
			}

			sub.Estimates[i] = est
			sub.Uncertainties[i] = unc

			if cfg.PosteriorSamples > 0 {
				post := make([][]float64, cfg.Estimates)
				for j := range post {
					samples := make([]float64, cfg.PosteriorSamples)
					for k := range samples {
						samples[k] = est[j] + rng.NormFloat64()*unc[j]
					}
					post[j] = samples
				}
				sub.Posteriors[i] = post
			}
		}

		out[c] = sub
	}

	return out, nil
}
