package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exoplanet-imaging-challenge/eidc2/submission"
)

func subs(rows ...[][]float64) []submission.Submission {
	out := make([]submission.Submission, len(rows))
	for i, r := range rows {
		out[i] = submission.Submission{Estimates: r}
	}
	return out
}

func TestAstrometryPerfectSubmissionScoresZero(t *testing.T) {
	gt := subs([][]float64{{2, 4}, {-3, 1}})
	sub := subs([][]float64{{2, 4}, {-3, 1}})

	score, dists, err := Astrometry(gt, sub)
	require.NoError(t, err)
	require.Zero(t, score)
	require.Len(t, dists, 4)
}

func TestAstrometryKnownDistances(t *testing.T) {
	gt := subs([][]float64{{2, 4}})
	sub := subs([][]float64{{1, 5}})

	// dx: |2-1|/2 = 0.5, dy: |4-5|/4 = 0.25 -> mean 0.375
	score, dists, err := Astrometry(gt, sub)
	require.NoError(t, err)
	require.InDelta(t, 0.375, score, 1e-12)

	// The detail vector keeps per-axis resolution.
	require.Len(t, dists, 2)
	require.InDelta(t, 0.5, dists[0], 1e-12)
	require.InDelta(t, 0.25, dists[1], 1e-12)
}

func TestAstrometryAveragesAcrossCubes(t *testing.T) {
	gt := subs([][]float64{{2, 2}}, [][]float64{{4, 4}})
	sub := subs([][]float64{{1, 1}}, [][]float64{{4, 4}})

	// Cube 1: 0.5, cube 2: 0 -> 0.25
	score, _, err := Astrometry(gt, sub)
	require.NoError(t, err)
	require.InDelta(t, 0.25, score, 1e-12)
}

func TestAstrometryMissedDetection(t *testing.T) {
	gt := subs([][]float64{{2, 4}})
	sub := subs([][]float64{{-1, -1}})

	score, dists, err := Astrometry(gt, sub)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)
	require.Equal(t, []float64{1, 1}, dists)
}

func TestAstrometryShapeErrors(t *testing.T) {
	gt := subs([][]float64{{2, 4}})

	_, _, err := Astrometry(nil, nil)
	require.ErrorIs(t, err, ErrNoCubes)

	_, _, err = Astrometry(gt, subs([][]float64{{1, 1}}, [][]float64{{1, 1}}))
	require.ErrorIs(t, err, ErrCubeCount)

	_, _, err = Astrometry(gt, subs([][]float64{{1, 1}, {2, 2}}))
	require.ErrorIs(t, err, ErrInjectionCount)

	_, _, err = Astrometry(gt, subs([][]float64{{1}}))
	require.ErrorIs(t, err, ErrAstroRow)
}

func TestPhotometryKnownDistances(t *testing.T) {
	gt := subs([][]float64{{2, 4, 8}})
	sub := subs([][]float64{{1, 2, 4}})

	score, dists, err := Photometry(gt, sub)
	require.NoError(t, err)
	require.InDelta(t, 0.5, score, 1e-12)
	require.Len(t, dists, 3)
}

func TestPhotometryCurveLengthMismatch(t *testing.T) {
	gt := subs([][]float64{{2, 4, 8}})
	sub := subs([][]float64{{1, 2}})

	_, _, err := Photometry(gt, sub)
	require.ErrorIs(t, err, ErrEstimateCount)
}

func TestPhotometryMultipleInjections(t *testing.T) {
	gt := subs([][]float64{{2, 2}, {4, 4}})
	sub := subs([][]float64{{1, 1}, {4, 4}})

	// Injection 1: 0.5, injection 2: 0 -> cube mean 0.25
	score, _, err := Photometry(gt, sub)
	require.NoError(t, err)
	require.InDelta(t, 0.25, score, 1e-12)
}
