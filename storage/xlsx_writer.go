package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bfi-dashboard/models"
)

// Workbook sheet names.
const (
	SheetGenreCounts = "Genre Counts"
	SheetGenreTrends = "Genre Trends"
	SheetBoxOffice   = "Box Office"
)

// XLSXWriter exports an InsightReport as a summary workbook.
type XLSXWriter struct {
	path string
	file *excelize.File
}

// NewXLSXWriter prepares a workbook that is saved to path on WriteReport.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path, file: excelize.NewFile()}, nil
}

// Path is the workbook destination.
func (x *XLSXWriter) Path() string { return x.path }

// WriteReport fills the three summary sheets and saves the workbook.
func (x *XLSXWriter) WriteReport(r *models.InsightReport) error {
	f := x.file
	if err := f.SetSheetName("Sheet1", SheetGenreCounts); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	for _, name := range []string{SheetGenreTrends, SheetBoxOffice} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: add sheet %q: %w", name, err)
		}
	}

	if err := x.writeGenreCounts(r.GenreCounts); err != nil {
		return err
	}
	if err := x.writeGenreTrends(r.GenreTrend); err != nil {
		return err
	}
	if err := x.writeBoxOffice(r); err != nil {
		return err
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) writeGenreCounts(counts []models.GenreCount) error {
	rows := make([][]any, 0, len(counts))
	for _, gc := range counts {
		rows = append(rows, []any{gc.Genre, gc.Count})
	}
	return x.writeSheet(SheetGenreCounts, []string{models.ColumnGenre, "Films"}, rows)
}

func (x *XLSXWriter) writeGenreTrends(trend *models.GenreTrend) error {
	header := []string{models.ColumnPeriod}
	var rows [][]any
	if !trend.Empty() {
		header = append(header, trend.Genres...)
		rows = make([][]any, 0, len(trend.Periods))
		for i, p := range trend.Periods {
			row := make([]any, 0, len(trend.Genres)+1)
			row = append(row, p)
			for _, v := range trend.Counts[i] {
				row = append(row, v)
			}
			rows = append(rows, row)
		}
	}
	return x.writeSheet(SheetGenreTrends, header, rows)
}

func (x *XLSXWriter) writeBoxOffice(r *models.InsightReport) error {
	rows := make([][]any, 0, len(r.RevenueTrend)+1)
	for _, p := range r.RevenueTrend {
		rows = append(rows, []any{p.Period, p.GrossFloat()})
	}
	total, _ := r.TotalGross.Float64()
	rows = append(rows, []any{"Total", total})
	return x.writeSheet(SheetBoxOffice, []string{models.ColumnPeriod, models.ColumnGross}, rows)
}

func (x *XLSXWriter) writeSheet(sheet string, header []string, rows [][]any) error {
	f := x.file
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx: %s header: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: %s header: %w", sheet, err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 20); err != nil {
			return fmt.Errorf("xlsx: %s width: %w", sheet, err)
		}
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", sheet, r+2, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", sheet, r+2, err)
		}
	}
	return nil
}

// Close releases the workbook.
func (x *XLSXWriter) Close() error {
	return x.file.Close()
}
