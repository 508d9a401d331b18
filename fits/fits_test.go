package fits

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	images := []Image{
		{Name: "ESTIMATES", Axes: []int{2, 3}, Data: []float64{1, 2, 3, 4, 5, 6}},
		{Name: "UNCERTAINTIES", Axes: []int{2, 3}, Data: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, images))

	got, err := ReadAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range images {
		require.Equal(t, images[i].Axes, got[i].Axes, "axes of HDU %d", i)
		require.InDeltaSlice(t, images[i].Data, got[i].Data, 1e-12, "data of HDU %d", i)
	}
}

func TestReadN(t *testing.T) {
	images := []Image{
		{Axes: []int{2}, Data: []float64{1, 2}},
		{Name: "SECOND", Axes: []int{3}, Data: []float64{3, 4, 5}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, images))

	img, err := ReadN(bytes.NewReader(buf.Bytes()), 1)
	require.NoError(t, err)
	require.Equal(t, []int{3}, img.Axes)
	require.InDeltaSlice(t, []float64{3, 4, 5}, img.Data, 1e-12)

	_, err = ReadN(bytes.NewReader(buf.Bytes()), 5)
	require.ErrorIs(t, err, ErrHDURange)

	_, err = ReadN(bytes.NewReader(buf.Bytes()), -1)
	require.ErrorIs(t, err, ErrHDURange)
}

func TestWriteValidation(t *testing.T) {
	var buf bytes.Buffer

	require.ErrorIs(t, Write(&buf, nil), ErrNoImages)

	bad := []Image{{Axes: []int{2, 2}, Data: []float64{1, 2, 3}}}
	err := Write(&buf, bad)
	require.True(t, errors.Is(err, ErrAxesSize), "err = %v", err)
}

func TestInfo(t *testing.T) {
	images := []Image{
		{Name: "ESTIMATES", Axes: []int{4, 2}, Data: make([]float64, 8)},
		{Name: "POSTERIORS", Axes: []int{10, 4, 2}, Data: make([]float64, 80)},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, images))

	info, err := Info(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, info, 2)

	require.Equal(t, "ESTIMATES", info[0].Name)
	require.Equal(t, -64, info[0].Bitpix)
	require.Equal(t, []int{4, 2}, info[0].Axes)
	require.Equal(t, []int{10, 4, 2}, info[1].Axes)
}

func TestImageLen(t *testing.T) {
	require.Equal(t, 24, Image{Axes: []int{2, 3, 4}}.Len())
	require.Equal(t, 1, Image{}.Len())
}
