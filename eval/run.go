package eval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/exoplanet-imaging-challenge/eidc2/metrics"
	"github.com/exoplanet-imaging-challenge/eidc2/submission"
)

// ArchivePair names the two ZIP archives of one task: the participant
// submission and the ground-truth pack.
type ArchivePair struct {
	Submission  string `yaml:"submission"`
	GroundTruth string `yaml:"ground_truth"`
}

// Tasks names the archives of a full evaluation run.
type Tasks struct {
	Astrometry ArchivePair `yaml:"astrometry"`
	Photometry ArchivePair `yaml:"photometry"`
}

// TaskResult is the outcome of one task.
type TaskResult struct {
	Score   float64         `json:"score"`
	Details metrics.Summary `json:"details"`
}

// Report is the outcome of a full evaluation run.
type Report struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Astrometry TaskResult `json:"astrometry"`
	Photometry TaskResult `json:"photometry"`

	// Final is the weighted combination of both task scores.
	Final float64 `json:"final"`
}

type runConfig struct {
	mode        metrics.Mode
	astroWeight float64
	photoWeight float64
}

// RunOption configures an evaluation run.
type RunOption func(*runConfig)

// WithRunMode overrides the distance mode for both tasks.
func WithRunMode(m metrics.Mode) RunOption {
	return func(cfg *runConfig) {
		cfg.mode = m
	}
}

// WithWeights sets the task weights used for the final combined score.
func WithWeights(astro, photo float64) RunOption {
	return func(cfg *runConfig) {
		if astro >= 0 && photo >= 0 && astro+photo > 0 {
			cfg.astroWeight = astro
			cfg.photoWeight = photo
		}
	}
}

func defaultRunConfig() runConfig {
	return runConfig{mode: metrics.ModeRelative, astroWeight: 0.5, photoWeight: 0.5}
}

// Run loads the four archives concurrently, scores both tasks, and
// returns a report. Loading honors ctx cancellation.
func Run(ctx context.Context, tasks Tasks, opts ...RunOption) (*Report, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var (
		gtAstro, subAstro []submission.Submission
		gtPhoto, subPhoto []submission.Submission
	)

	g, ctx := errgroup.WithContext(ctx)

	load := func(path string, dst *[]submission.Submission) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			subs, err := submission.ReadArchive(path, submission.WithoutUncertainties())
			if err != nil {
				return fmt.Errorf("eval: loading %s: %w", path, err)
			}

			*dst = subs

			return nil
		}
	}

	g.Go(load(tasks.Astrometry.GroundTruth, &gtAstro))
	g.Go(load(tasks.Astrometry.Submission, &subAstro))
	g.Go(load(tasks.Photometry.GroundTruth, &gtPhoto))
	g.Go(load(tasks.Photometry.Submission, &subPhoto))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	astroScore, astroDists, err := Astrometry(gtAstro, subAstro, WithMode(cfg.mode))
	if err != nil {
		return nil, fmt.Errorf("eval: astrometry task: %w", err)
	}

	photoScore, photoDists, err := Photometry(gtPhoto, subPhoto, WithMode(cfg.mode))
	if err != nil {
		return nil, fmt.Errorf("eval: photometry task: %w", err)
	}

	wSum := cfg.astroWeight + cfg.photoWeight

	return &Report{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Astrometry: TaskResult{Score: astroScore, Details: metrics.Summarize(astroDists)},
		Photometry: TaskResult{Score: photoScore, Details: metrics.Summarize(photoDists)},
		Final:      (cfg.astroWeight*astroScore + cfg.photoWeight*photoScore) / wSum,
	}, nil
}
