package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"bfi-dashboard/models"
)

// CSVWriter writes the cleaned film table to a CSV file. The output uses the
// yearbook column names, so it can be fed back through the loader.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.RequiredColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{path: path, file: f, writer: w}, nil
}

// Path is the file being written.
func (c *CSVWriter) Path() string { return c.path }

// Write appends one row per film.
func (c *CSVWriter) Write(films []*models.Film) error {
	for _, f := range films {
		row := []string{
			models.FormatNumber(f.Period),
			f.Genre,
			models.FormatNumber(f.Gross),
			f.Title,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}
