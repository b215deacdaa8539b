package services

import (
	"math"
	"strconv"
	"strings"

	"bfi-dashboard/models"
	"bfi-dashboard/utils"
)

// missingTokens are cell values treated as absent, matching the usual
// spreadsheet/pandas NA markers.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Cleaner turns the unified table into complete, typed Film records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean drops every row missing a required value and projects the rest onto
// the four required fields. A table lacking a required column is a SchemaError.
func (c *Cleaner) Clean(t *models.Table) ([]*models.Film, error) {
	var missing []string
	for _, col := range models.RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &models.SchemaError{Missing: missing}
	}

	result := make([]*models.Film, 0, t.Len())
	for i, row := range t.Rows {
		film, reason := c.project(row)
		if film == nil {
			c.logger.Debug("[cleaner] Dropping row %d: %s", i, reason)
			continue
		}
		result = append(result, film)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d films (dropped %d)",
		t.Len(), len(result), t.Len()-len(result))
	return result, nil
}

// project returns the typed film for row, or nil and the reason it was dropped.
func (c *Cleaner) project(row models.Row) (*models.Film, string) {
	values := make(map[string]string, len(models.RequiredColumns))
	for _, col := range models.RequiredColumns {
		v, ok := cell(row, col)
		if !ok {
			return nil, "missing " + col
		}
		values[col] = v
	}

	period, ok := parseNumber(values[models.ColumnPeriod])
	if !ok {
		c.logger.Warn("[cleaner] Non-numeric %s %q treated as missing",
			models.ColumnPeriod, values[models.ColumnPeriod])
		return nil, "non-numeric " + models.ColumnPeriod
	}
	gross, ok := parseNumber(values[models.ColumnGross])
	if !ok {
		c.logger.Warn("[cleaner] Non-numeric %s %q treated as missing",
			models.ColumnGross, values[models.ColumnGross])
		return nil, "non-numeric " + models.ColumnGross
	}

	return &models.Film{
		Period: period,
		Genre:  values[models.ColumnGenre],
		Gross:  gross,
		Title:  values[models.ColumnTitle],
	}, ""
}

// cell returns the trimmed value for col and whether it is present.
func cell(row models.Row, col string) (string, bool) {
	raw, ok := row[col]
	if !ok {
		return "", false
	}
	v := strings.TrimSpace(raw)
	if _, na := missingTokens[v]; na {
		return "", false
	}
	return v, true
}

// parseNumber accepts plain, thousands-separated and £-prefixed numbers.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "£")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
