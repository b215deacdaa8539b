package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"bfi-dashboard/models"
	"bfi-dashboard/utils"
)

// DefaultEncodings is the ordered list of encodings tried for every file.
// ISO-8859-1 accepts any byte sequence, so later candidates only matter when
// the list is overridden.
var DefaultEncodings = []string{"utf-8", "iso-8859-1", "latin1", "cp1252"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeError marks a failure to decode raw bytes with one encoding.
// It is the only error class that moves the loader on to the next encoding.
type decodeError struct {
	encoding string
	err      error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode as %s: %v", e.encoding, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

func isDecodeError(err error) bool {
	var de *decodeError
	return errors.As(err, &de)
}

// decoderFor returns the transformer that converts bytes in the named
// encoding to UTF-8, failing on invalid input where the encoding can fail.
func decoderFor(name string) (transform.Transformer, error) {
	if isUTF8(name) {
		return encoding.UTF8Validator, nil
	}
	switch strings.ToLower(name) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

func isUTF8(name string) bool {
	n := strings.ToLower(name)
	return n == "utf-8" || n == "utf8"
}

// Loader discovers yearbook CSV files and parses them into one table.
type Loader struct {
	logger   *utils.Logger
	fallback *utils.Fallback
}

// NewLoader creates a Loader that tries DefaultEncodings in order.
func NewLoader(logger *utils.Logger) *Loader {
	return NewLoaderWithEncodings(logger, DefaultEncodings)
}

// NewLoaderWithEncodings creates a Loader with a custom encoding order.
func NewLoaderWithEncodings(logger *utils.Logger, encodings []string) *Loader {
	return &Loader{
		logger: logger,
		fallback: &utils.Fallback{
			Candidates: append([]string(nil), encodings...),
			Retryable:  isDecodeError,
			Logger:     logger,
		},
	}
}

// Load globs pattern and concatenates every matching file into one table.
// Files are processed in the order filepath.Glob returns them.
func (l *Loader) Load(pattern string) (*models.Table, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("loader: bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, &models.NoInputFilesError{Pattern: pattern}
	}

	l.logger.Info("[loader] Found %d file(s) matching %s", len(paths), pattern)

	tables := make([]*models.Table, 0, len(paths))
	for _, path := range paths {
		t, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	unified := models.Concat(tables...)
	l.logger.Info("[loader] Unified table: %d rows, %d columns", unified.Len(), len(unified.Columns))
	return unified, nil
}

// LoadFile parses a single CSV file, trying each configured encoding in turn.
func (l *Loader) LoadFile(path string) (*models.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}

	var used string
	t, err := utils.TryEach(l.fallback, "read "+path, func(enc string) (*models.Table, error) {
		text, err := decode(raw, enc)
		if err != nil {
			return nil, err
		}
		used = enc
		return parseCSV(text)
	})
	if err != nil {
		if utils.IsCandidatesError(err) {
			return nil, &models.DecodingError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("loader: %w", err)
	}

	l.logger.Info("[loader] Read %s (%s): %d rows", filepath.Base(path), used, t.Len())
	return t, nil
}

func decode(raw []byte, enc string) ([]byte, error) {
	tr, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}
	if isUTF8(enc) {
		raw = bytes.TrimPrefix(raw, utf8BOM)
	}
	out, _, err := transform.Bytes(tr, raw)
	if err != nil {
		return nil, &decodeError{encoding: enc, err: err}
	}
	return out, nil
}

// parseCSV turns decoded UTF-8 text into a table. Missing-value tokens are
// left in place; the cleaner decides what counts as missing.
func parseCSV(text []byte) (*models.Table, error) {
	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return models.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := uniqueHeaders(header)
	t := models.NewTable(columns...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if len(record) > len(columns) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: row has %d fields, header has %d", line, len(record), len(columns))
		}

		row := make(models.Row, len(columns))
		for i, cell := range record {
			row[columns[i]] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// uniqueHeaders trims header cells and suffixes repeats with ".1", ".2", ...
// A suffix that would clash with another header cell is skipped.
func uniqueHeaders(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		taken[names[i]] = true
	}

	used := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range names {
		if !used[name] {
			used[name] = true
			out[i] = name
			continue
		}
		for {
			next[name]++
			candidate := name + "." + strconv.Itoa(next[name])
			if !taken[candidate] && !used[candidate] {
				used[candidate] = true
				out[i] = candidate
				break
			}
		}
	}
	return out
}
