// Package results reads and writes per-episode metrics as CSV.
package results

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/JieUpup/MRGC/internal/models"
)

// WriteCSV writes a header line followed by one line per record in
// models.MetricsHeader column order.
func WriteCSV(w io.Writer, records []models.Metrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.MetricsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path, creating parent directories. The file
// is replaced atomically so a failed run never leaves a partial CSV.
func WriteFile(path string, records []models.Metrics) error {
	return WriteAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, records)
	})
}

// WriteAtomic creates path's parent directory, streams write into a temp
// file beside path and renames it into place.
func WriteAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		// Clean up temp file on rename failure.
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}

// ErrBadHeader is returned when a CSV does not start with models.MetricsHeader.
var ErrBadHeader = errors.New("unexpected results header")

// ReadCSV parses records written by WriteCSV.
func ReadCSV(r io.Reader) ([]models.Metrics, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(models.MetricsHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading header: %w", models.ErrEmptyInput)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !slices.Equal(header, models.MetricsHeader) {
		return nil, fmt.Errorf("%w: got %v", ErrBadHeader, header)
	}

	var records []models.Metrics
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		m, err := models.ParseMetricsRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, m)
	}
	return records, nil
}

// ReadFile parses the results CSV at path.
func ReadFile(path string) ([]models.Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
