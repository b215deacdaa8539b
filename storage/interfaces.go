package storage

import (
	"image"

	"bfi-dashboard/models"
)

// FilmWriter is the interface any cleaned-film export must satisfy.
type FilmWriter interface {
	Write(films []*models.Film) error
	Close() error
}

// ReportWriter persists the computed aggregates.
type ReportWriter interface {
	WriteReport(report *models.InsightReport) error
	Close() error
}

// ImageWriter persists a rendered image under a file name and returns the
// path it was written to.
type ImageWriter interface {
	WriteImage(filename string, img image.Image) (string, error)
}

var (
	_ FilmWriter   = (*CSVWriter)(nil)
	_ FilmWriter   = (*SQLiteWriter)(nil)
	_ ReportWriter = (*XLSXWriter)(nil)
	_ ImageWriter  = (*PNGWriter)(nil)
)
