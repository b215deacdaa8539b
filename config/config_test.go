package config

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "bfi_yearbook-*.csv", cfg.InputPattern)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 300, cfg.DPI)
	assert.Empty(t, cfg.FontPath)
	assert.Empty(t, cfg.CleanCSVPath)
	assert.Empty(t, cfg.SummaryXLSXPath)
	assert.Empty(t, cfg.ArchiveDBPath)
	assert.False(t, cfg.Debug)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BFI_INPUT_PATTERN", "data/*.csv")
	t.Setenv("BFI_OUTPUT_DIR", "out")
	t.Setenv("BFI_DPI", "72")
	t.Setenv("BFI_SUMMARY_XLSX_PATH", "out/summary.xlsx")
	t.Setenv("BFI_ARCHIVE_DB_PATH", "out/archive.db")
	t.Setenv("BFI_DEBUG", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "data/*.csv", cfg.InputPattern)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 72, cfg.DPI)
	assert.Equal(t, "out/summary.xlsx", cfg.SummaryXLSXPath)
	assert.Equal(t, "out/archive.db", cfg.ArchiveDBPath)
	assert.True(t, cfg.Debug)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"dpi too low", "BFI_DPI", "10"},
		{"dpi too high", "BFI_DPI", "1200"},
		{"xlsx extension", "BFI_SUMMARY_XLSX_PATH", "summary.csv"},
		{"csv extension", "BFI_CLEAN_CSV_PATH", "clean.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs), "want validation errors, got %v", err)
		})
	}
}

func TestFromEnvBadInteger(t *testing.T) {
	t.Setenv("BFI_DPI", "high")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DPI")
}
