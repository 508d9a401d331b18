package submission

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/exoplanet-imaging-challenge/eidc2/fits"
)

// ErrNoFITSEntries indicates an archive with no .fits members.
var ErrNoFITSEntries = errors.New("submission: archive contains no FITS files")

type readConfig struct {
	uncertainties bool
	posteriors    bool
	only          map[string]bool
}

// ReadOption configures archive reading.
type ReadOption func(*readConfig)

// WithoutUncertainties skips decoding the uncertainty extension.
func WithoutUncertainties() ReadOption {
	return func(cfg *readConfig) {
		cfg.uncertainties = false
	}
}

// WithPosteriors also decodes the posterior-sample extension.
func WithPosteriors() ReadOption {
	return func(cfg *readConfig) {
		cfg.posteriors = true
	}
}

// WithFiles restricts reading to the named archive entries, matching the
// original behaviour of passing an explicit FITS file list.
func WithFiles(names ...string) ReadOption {
	return func(cfg *readConfig) {
		cfg.only = make(map[string]bool, len(names))
		for _, n := range names {
			cfg.only[n] = true
		}
	}
}

func defaultReadConfig() readConfig {
	return readConfig{uncertainties: true}
}

// ReadArchive decodes every FITS file of a submission ZIP archive, in
// entry-name order, one Submission per cube. Archive members are decoded
// in memory; nothing is extracted to disk.
func ReadArchive(path string, opts ...ReadOption) ([]Submission, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("submission: opening archive: %w", err)
	}
	defer rc.Close()

	return readZip(&rc.Reader, opts...)
}

// ReadArchiveFrom decodes a submission archive from an in-memory reader.
func ReadArchiveFrom(r io.ReaderAt, size int64, opts ...ReadOption) ([]Submission, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("submission: opening archive: %w", err)
	}

	return readZip(zr, opts...)
}

func readZip(zr *zip.Reader, opts ...ReadOption) ([]Submission, error) {
	cfg := defaultReadConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var entries []*zip.File
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".fits") {
			continue
		}
		if cfg.only != nil && !cfg.only[f.Name] {
			continue
		}

		entries = append(entries, f)
	}

	if len(entries) == 0 {
		return nil, ErrNoFITSEntries
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	out := make([]Submission, 0, len(entries))

	for _, entry := range entries {
		f, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("submission: opening %s: %w", entry.Name, err)
		}

		raw, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("submission: reading %s: %w", entry.Name, err)
		}

		images, err := fits.ReadAll(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("submission: decoding %s: %w", entry.Name, err)
		}

		sub, err := fromImages(images, cfg.uncertainties, cfg.posteriors)
		if err != nil {
			return nil, fmt.Errorf("submission: %s: %w", entry.Name, err)
		}

		out = append(out, sub)
	}

	return out, nil
}

// WriteArchive stores one MEF per submission in a ZIP archive at path.
// Entries are named mef_001.fits, mef_002.fits, ... so that reading the
// archive back preserves cube order.
func WriteArchive(path string, subs []Submission) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("submission: creating archive: %w", err)
	}

	if err := WriteArchiveTo(f, subs); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteArchiveTo writes the submissions as a ZIP archive to w.
func WriteArchiveTo(w io.Writer, subs []Submission) error {
	if len(subs) == 0 {
		return ErrEmpty
	}

	zw := zip.NewWriter(w)

	for i, sub := range subs {
		images, err := sub.toImages()
		if err != nil {
			return fmt.Errorf("submission: encoding cube %d: %w", i+1, err)
		}

		ew, err := zw.Create(fmt.Sprintf("mef_%03d.fits", i+1))
		if err != nil {
			return fmt.Errorf("submission: creating entry %d: %w", i+1, err)
		}

		if err := fits.Write(ew, images); err != nil {
			return fmt.Errorf("submission: writing entry %d: %w", i+1, err)
		}
	}

	return zw.Close()
}
