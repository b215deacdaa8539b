package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "BFI"

// Config holds all application configuration loaded from environment variables.
// The defaults reproduce the fixed dashboard run; optional exports stay off
// until a path is given.
type Config struct {
	InputPattern string `envconfig:"INPUT_PATTERN" default:"bfi_yearbook-*.csv" validate:"required"`
	OutputDir    string `envconfig:"OUTPUT_DIR" default:"." validate:"required"`
	DPI          int    `envconfig:"DPI" default:"300" validate:"min=36,max=600"`
	FontPath     string `envconfig:"FONT_PATH"`

	CleanCSVPath    string `envconfig:"CLEAN_CSV_PATH" validate:"omitempty,endswith=.csv"`
	SummaryXLSXPath string `envconfig:"SUMMARY_XLSX_PATH" validate:"omitempty,endswith=.xlsx"`
	ArchiveDBPath   string `envconfig:"ARCHIVE_DB_PATH"`

	Debug bool `envconfig:"DEBUG" default:"false"`
}

// Load reads the .env file, then the environment, and returns a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from BFI_* environment variables only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: load from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}
