package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfi-dashboard/charts"
	"bfi-dashboard/config"
	"bfi-dashboard/dashboard"
	"bfi-dashboard/models"
	"bfi-dashboard/storage"
	"bfi-dashboard/utils"
)

const fixture = "Rank,Title,Country of Origin,Box office gross (£ million),Distributor,Widest point of release,Genre\n" +
	"1,Skyfall,UK/USA,94.3,Sony,587,Action\n" +
	"2,Brave,USA,22.1,Disney,540,Animation\n" +
	"3,Les Misérables,UK/USA,40.8,Universal,551,Drama\n" +
	"4,Ted,USA,30.2,Universal,587,Comedy\n" +
	"5,Untitled,UK,1.2,Indie,30,\n"

var chartFiles = []string{
	charts.GenreBarFile,
	charts.GenreTrendsFile,
	charts.RevenueTrendFile,
	charts.GrossDistributionFile,
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "bfi_yearbook-2012.csv"), []byte(fixture), 0644))

	return &config.Config{
		InputPattern: filepath.Join(in, "bfi_yearbook-*.csv"),
		OutputDir:    filepath.Join(t.TempDir(), "out"),
		DPI:          36,
	}
}

func TestRunWritesChartsAndDashboard(t *testing.T) {
	cfg := testConfig(t)
	export := t.TempDir()
	cfg.CleanCSVPath = filepath.Join(export, "clean.csv")
	cfg.SummaryXLSXPath = filepath.Join(export, "summary.xlsx")
	cfg.ArchiveDBPath = filepath.Join(export, "archive.db")

	require.NoError(t, run(cfg, utils.NewDiscardLogger()))

	for _, name := range append(chartFiles, dashboard.OutputFile) {
		f, err := os.Open(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		dpi, err := storage.ReadDPI(f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, 36, dpi, name)
	}

	for _, p := range []string{cfg.CleanCSVPath, cfg.SummaryXLSXPath, cfg.ArchiveDBPath} {
		assert.FileExists(t, p)
	}
}

func TestRunMissingFontKeepsCharts(t *testing.T) {
	cfg := testConfig(t)
	cfg.FontPath = filepath.Join(t.TempDir(), "arial.ttf")

	err := run(cfg, utils.NewDiscardLogger())
	var fre *models.FontResourceError
	require.ErrorAs(t, err, &fre)

	for _, name := range chartFiles {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, name))
	}
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, dashboard.OutputFile))
}

func TestRunNoInputFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputPattern = filepath.Join(t.TempDir(), "bfi_yearbook-*.csv")

	err := run(cfg, utils.NewDiscardLogger())
	var nie *models.NoInputFilesError
	require.ErrorAs(t, err, &nie)
	assert.NoDirExists(t, cfg.OutputDir)
}
