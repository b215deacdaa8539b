package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"bfi-dashboard/charts"
	"bfi-dashboard/config"
	"bfi-dashboard/dashboard"
	"bfi-dashboard/models"
	"bfi-dashboard/services"
	"bfi-dashboard/storage"
	"bfi-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	logger.SetDebug(cfg.Debug)

	logger.Info("=== BFI Cinema Trends dashboard starting ===")
	logger.Info("Config: input %q | output dir %s | dpi %d", cfg.InputPattern, cfg.OutputDir, cfg.DPI)

	if err := run(cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// run executes the whole pipeline: load, clean, aggregate, export, render
// and composite. Files written before a failure stay on disk.
func run(cfg *config.Config, logger *utils.Logger) error {
	table, err := services.NewLoader(logger).Load(cfg.InputPattern)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	films, err := services.NewCleaner(logger).Clean(table)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	logger.Info("Cleaned dataset: %d films", len(films))

	if cfg.CleanCSVPath != "" {
		exportCleanCSV(cfg.CleanCSVPath, films, logger)
	}

	insightFilms := films
	if cfg.ArchiveDBPath != "" {
		insightFilms = archiveFilms(cfg.ArchiveDBPath, films, logger)
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(insightFilms)
	insightSvc.Print(report)

	if cfg.SummaryXLSXPath != "" {
		exportSummary(cfg.SummaryXLSXPath, report, logger)
	}

	var pngWriter storage.ImageWriter
	pngWriter, err = storage.NewPNGWriter(cfg.OutputDir, cfg.DPI, logger)
	if err != nil {
		return err
	}

	renderer := charts.NewRenderer(charts.DefaultStyle().WithDPI(cfg.DPI), logger)
	rendered, renderErr := renderer.RenderAll(report)
	tiles := make([]image.Image, 0, len(rendered))
	for _, c := range rendered {
		if _, err := pngWriter.WriteImage(c.Filename, c.Image); err != nil {
			return err
		}
		tiles = append(tiles, c.Image)
	}
	if renderErr != nil {
		return fmt.Errorf("render: %w", renderErr)
	}

	layout := dashboard.DefaultLayout()
	layout.FontPath = cfg.FontPath
	canvas, err := dashboard.NewCompositor(layout, logger).Compose(tiles)
	if err != nil {
		return fmt.Errorf("composite: %w", err)
	}

	out, err := pngWriter.WriteImage(dashboard.OutputFile, canvas)
	if err != nil {
		return err
	}

	fmt.Printf("  Done. Charts → %s | Dashboard → %s\n\n", cfg.OutputDir, out)
	return nil
}

func exportCleanCSV(path string, films []*models.Film, logger *utils.Logger) {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		return
	}
	defer w.Close()

	if err := w.Write(films); err != nil {
		logger.Error("CSV write failed: %v", err)
		return
	}
	logger.Info("Cleaned films saved to %s", w.Path())
}

// archiveFilms stores films under a new run and reads them back for the
// insight report. Any archive failure falls back to the in-memory films.
func archiveFilms(path string, films []*models.Film, logger *utils.Logger) []*models.Film {
	archive, err := storage.NewSQLiteWriter(path)
	if err != nil {
		logger.Error("Failed to open archive %s: %v", path, err)
		return films
	}
	defer archive.Close()

	if err := archive.Write(films); err != nil {
		logger.Error("Archive write failed: %v", err)
		return films
	}
	logger.Info("Cleaned films archived in %s (run %s)", filepath.Base(path), archive.RunID())

	dbFilms, err := archive.FetchRun(archive.RunID())
	if err != nil {
		logger.Error("Failed to fetch films from archive for insights: %v", err)
		return films
	}
	return dbFilms
}

func exportSummary(path string, report *models.InsightReport, logger *utils.Logger) {
	w, err := storage.NewXLSXWriter(path)
	if err != nil {
		logger.Error("Failed to create workbook: %v", err)
		return
	}
	defer w.Close()

	if err := w.WriteReport(report); err != nil {
		logger.Error("Workbook write failed: %v", err)
		return
	}
	logger.Info("Summary workbook saved to %s", w.Path())
}
