// Package fits provides typed helpers over FITS files as used by the
// data challenge: float64 image HDUs, optionally stacked into
// Multi-Extension FITS (MEF) files.
//
// On write, images are stored as BITPIX -64 with the first image as the
// primary HDU and the rest as extensions carrying EXTNAME cards. On
// read, any integer or floating BITPIX is accepted and converted to
// float64.
package fits

import (
	"errors"
	"fmt"
	"io"

	"github.com/astrogo/fitsio"
)

// Errors returned by FITS helpers.
var (
	ErrNoImages = errors.New("fits: no images to write")
	ErrHDURange = errors.New("fits: HDU index out of range")
	ErrNotImage = errors.New("fits: HDU is not an image")
	ErrBitpix   = errors.New("fits: unsupported BITPIX")
	ErrAxesSize = errors.New("fits: data length does not match axes")
)

// Image is one image HDU: a flat float64 array with its axis lengths in
// FITS order (NAXIS1 = fastest varying axis).
type Image struct {
	Name string
	Axes []int
	Data []float64
}

// Len returns the number of elements implied by the axes.
func (img Image) Len() int {
	n := 1
	for _, a := range img.Axes {
		n *= a
	}

	return n
}

// Write stores images as a FITS file on w: images[0] becomes the primary
// HDU, the rest become image extensions. Every image with a non-empty
// Name gets an EXTNAME card.
func Write(w io.Writer, images []Image) error {
	if len(images) == 0 {
		return ErrNoImages
	}

	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("fits: creating file: %w", err)
	}
	defer f.Close()

	for i, img := range images {
		if img.Len() != len(img.Data) {
			return fmt.Errorf("%w: image %d has %d values for axes %v", ErrAxesSize, i, len(img.Data), img.Axes)
		}

		hdu := fitsio.NewImage(-64, img.Axes)

		if img.Name != "" {
			if err := hdu.Header().Append(fitsio.Card{
				Name:    "EXTNAME",
				Value:   img.Name,
				Comment: "extension name",
			}); err != nil {
				return fmt.Errorf("fits: appending EXTNAME: %w", err)
			}
		}

		data := make([]float64, len(img.Data))
		copy(data, img.Data)

		if err := hdu.Write(&data); err != nil {
			return fmt.Errorf("fits: writing image %d: %w", i, err)
		}

		if err := f.Write(hdu); err != nil {
			return fmt.Errorf("fits: writing HDU %d: %w", i, err)
		}

		if err := hdu.Close(); err != nil {
			return fmt.Errorf("fits: closing HDU %d: %w", i, err)
		}
	}

	return nil
}

// ReadAll decodes every image HDU of a FITS file into float64 arrays.
func ReadAll(r io.ReadSeeker) ([]Image, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("fits: opening file: %w", err)
	}
	defer f.Close()

	hdus := f.HDUs()
	out := make([]Image, 0, len(hdus))

	for i, hdu := range hdus {
		img, err := decodeImage(hdu)
		if err != nil {
			return nil, fmt.Errorf("fits: HDU %d: %w", i, err)
		}

		out = append(out, img)
	}

	return out, nil
}

// ReadN decodes the nth HDU of a FITS file as a float64 image.
func ReadN(r io.ReadSeeker, n int) (Image, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return Image{}, fmt.Errorf("fits: opening file: %w", err)
	}
	defer f.Close()

	if n < 0 || n >= len(f.HDUs()) {
		return Image{}, fmt.Errorf("%w: %d of %d", ErrHDURange, n, len(f.HDUs()))
	}

	img, err := decodeImage(f.HDU(n))
	if err != nil {
		return Image{}, fmt.Errorf("fits: HDU %d: %w", n, err)
	}

	return img, nil
}

// HDUInfo describes one HDU of a FITS file.
type HDUInfo struct {
	Index  int
	Name   string
	Bitpix int
	Axes   []int
}

// Info lists the HDUs of a FITS file without decoding pixel data sizes
// beyond the headers.
func Info(r io.ReadSeeker) ([]HDUInfo, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("fits: opening file: %w", err)
	}
	defer f.Close()

	hdus := f.HDUs()
	out := make([]HDUInfo, 0, len(hdus))

	for i, hdu := range hdus {
		hdr := hdu.Header()
		out = append(out, HDUInfo{
			Index:  i,
			Name:   hdu.Name(),
			Bitpix: hdr.Bitpix(),
			Axes:   hdr.Axes(),
		})
	}

	return out, nil
}

// decodeImage reads an image HDU into float64, converting from the
// stored BITPIX.
func decodeImage(hdu fitsio.HDU) (Image, error) {
	img, ok := hdu.(fitsio.Image)
	if !ok {
		return Image{}, ErrNotImage
	}

	hdr := img.Header()
	axes := hdr.Axes()

	n := 1
	for _, a := range axes {
		n *= a
	}

	out := Image{
		Name: hdu.Name(),
		Axes: append([]int(nil), axes...),
		Data: make([]float64, n),
	}

	if n == 0 {
		return out, nil
	}

	switch hdr.Bitpix() {
	case -64:
		if err := img.Read(&out.Data); err != nil {
			return Image{}, err
		}
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return Image{}, err
		}
		for i, v := range raw {
			out.Data[i] = float64(v)
		}
	case 8:
		raw := make([]int8, n)
		if err := img.Read(&raw); err != nil {
			return Image{}, err
		}
		for i, v := range raw {
			out.Data[i] = float64(v)
		}
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return Image{}, err
		}
		for i, v := range raw {
			out.Data[i] = float64(v)
		}
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return Image{}, err
		}
		for i, v := range raw {
			out.Data[i] = float64(v)
		}
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return Image{}, err
		}
		for i, v := range raw {
			out.Data[i] = float64(v)
		}
	default:
		return Image{}, fmt.Errorf("%w: %d", ErrBitpix, hdr.Bitpix())
	}

	return out, nil
}
