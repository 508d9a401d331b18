package submission

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSubmission() Submission {
	return Submission{
		Estimates:     [][]float64{{1, 2}, {3, 4}},
		Uncertainties: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
		Posteriors: [][][]float64{
			{{1.1, 0.9, 1.0}, {2.1, 1.9, 2.0}},
			{{3.1, 2.9, 3.0}, {4.1, 3.9, 4.0}},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleSubmission().Validate())

	require.ErrorIs(t, Submission{}.Validate(), ErrEmpty)

	bad := sampleSubmission()
	bad.Uncertainties = bad.Uncertainties[:1]
	require.ErrorIs(t, bad.Validate(), ErrShapeMismatch)

	bad = sampleSubmission()
	bad.Posteriors = bad.Posteriors[:1]
	require.ErrorIs(t, bad.Validate(), ErrPosteriorShape)
}

func TestArchiveRoundTrip(t *testing.T) {
	subs := []Submission{sampleSubmission(), sampleSubmission()}
	subs[1].Estimates[0][0] = -7

	path := filepath.Join(t.TempDir(), "submission.zip")
	require.NoError(t, WriteArchive(path, subs))

	got, err := ReadArchive(path, WithPosteriors())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, subs[0].Estimates, got[0].Estimates)
	require.Equal(t, subs[0].Uncertainties, got[0].Uncertainties)
	require.Equal(t, subs[0].Posteriors, got[0].Posteriors)
	require.Equal(t, -7.0, got[1].Estimates[0][0])
}

func TestReadArchiveDefaultSkipsPosteriors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.zip")
	require.NoError(t, WriteArchive(path, []Submission{sampleSubmission()}))

	got, err := ReadArchive(path)
	require.NoError(t, err)
	require.NotNil(t, got[0].Uncertainties)
	require.Nil(t, got[0].Posteriors)
}

func TestReadArchiveWithoutUncertainties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.zip")
	require.NoError(t, WriteArchive(path, []Submission{sampleSubmission()}))

	got, err := ReadArchive(path, WithoutUncertainties())
	require.NoError(t, err)
	require.Nil(t, got[0].Uncertainties)
}

func TestReadArchiveWithFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.zip")
	require.NoError(t, WriteArchive(path, []Submission{sampleSubmission(), sampleSubmission()}))

	got, err := ReadArchive(path, WithFiles("mef_002.fits"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = ReadArchive(path, WithFiles("nope.fits"))
	require.ErrorIs(t, err, ErrNoFITSEntries)
}

func TestReadArchiveFromMemory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArchiveTo(&buf, []Submission{sampleSubmission()}))

	got, err := ReadArchiveFrom(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSingleInjectionRowFromFlatArray(t *testing.T) {
	// A participant may store a single injection as a 1-D array; it
	// must come back as one estimate row.
	sub := Submission{Estimates: [][]float64{{5, 6, 7}}}

	images, err := sub.toImages()
	require.NoError(t, err)

	images[0].Axes = []int{3} // flatten to rank 1

	decoded, err := fromImages(images, true, false)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5, 6, 7}}, decoded.Estimates)
}

func TestMockDeterministic(t *testing.T) {
	cfg := DefaultMockConfig()
	cfg.Cubes = 3
	cfg.Injections = 2
	cfg.Estimates = 4
	cfg.PosteriorSamples = 16
	cfg.Seed = 42

	a, err := Mock(cfg)
	require.NoError(t, err)
	b, err := Mock(cfg)
	require.NoError(t, err)

	require.Equal(t, a, b, "same seed must reproduce the same archives")
	require.Len(t, a, 3)
	require.Len(t, a[0].Estimates, 2)
	require.Len(t, a[0].Estimates[0], 4)
	require.Len(t, a[0].Posteriors[1][3], 16)

	for _, sub := range a {
		require.NoError(t, sub.Validate())
		for i := range sub.Estimates {
			for j, v := range sub.Estimates[i] {
				require.GreaterOrEqual(t, v, cfg.EstimateBounds[0])
				require.LessOrEqual(t, v, cfg.EstimateBounds[1])
				require.GreaterOrEqual(t, sub.Uncertainties[i][j], cfg.ErrorBounds[0])
				require.LessOrEqual(t, sub.Uncertainties[i][j], cfg.ErrorBounds[1])
			}
		}
	}
}

func TestMockValidation(t *testing.T) {
	cfg := DefaultMockConfig()
	cfg.Cubes = 0
	_, err := Mock(cfg)
	require.ErrorIs(t, err, ErrMockConfig)

	cfg = DefaultMockConfig()
	cfg.EstimateBounds = [2]float64{1, 0}
	_, err = Mock(cfg)
	require.ErrorIs(t, err, ErrMockConfig)
}

func TestMockWithoutPosteriors(t *testing.T) {
	cfg := DefaultMockConfig()
	cfg.PosteriorSamples = 0

	subs, err := Mock(cfg)
	require.NoError(t, err)
	require.Nil(t, subs[0].Posteriors)
}
