package models

import (
	"fmt"
	"image"
	"strings"
)

// NoInputFilesError is returned when the input glob matches nothing.
type NoInputFilesError struct {
	Pattern string
}

func (e *NoInputFilesError) Error() string {
	return fmt.Sprintf("no input files match %q", e.Pattern)
}

// DecodingError is returned when no candidate text encoding could decode a file.
type DecodingError struct {
	Path string
	Err  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("none of the encodings worked for %s: %v", e.Path, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// SchemaError is returned when required columns are absent from the table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// EmptyDataError is returned when a chart has nothing to draw.
type EmptyDataError struct {
	Chart string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("%s: no data to plot", e.Chart)
}

// ExpectedTiles is the number of charts in the composite grid.
const ExpectedTiles = 4

// DimensionMismatchError is returned when the composite does not receive
// exactly ExpectedTiles equal-sized tiles. Count is the number of tiles
// received; when it is right, Tile names the first mismatching tile.
type DimensionMismatchError struct {
	Count int
	Tile  int
	Want  image.Point
	Got   image.Point
}

func (e *DimensionMismatchError) Error() string {
	if e.Count != ExpectedTiles {
		return fmt.Sprintf("expected %d tiles, got %d", ExpectedTiles, e.Count)
	}
	return fmt.Sprintf("tile %d is %dx%d, want %dx%d",
		e.Tile, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// FontResourceError is returned when the dashboard font cannot be loaded.
type FontResourceError struct {
	Path string
	Err  error
}

func (e *FontResourceError) Error() string {
	return fmt.Sprintf("font resource %q unavailable: %v", e.Path, e.Err)
}

func (e *FontResourceError) Unwrap() error { return e.Err }
