package models

import "strconv"

// Header strings agreed with the BFI yearbook producers.
const (
	ColumnPeriod = "Widest point of release"
	ColumnGenre  = "Genre"
	ColumnGross  = "Box office gross (£ million)"
	ColumnTitle  = "Title"
)

// RequiredColumns lists the projection kept after cleaning, in output order.
var RequiredColumns = []string{ColumnPeriod, ColumnGenre, ColumnGross, ColumnTitle}

// Film is one cleaned yearbook entry. All fields are present.
type Film struct {
	Period float64
	Genre  string
	Gross  float64 // £ million
	Title  string
}

// FormatNumber renders a period or gross value the way it round-trips through
// the cleaner: integral values print without a fractional part.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FilmTable projects cleaned films back into an untyped four-column table.
func FilmTable(films []*Film) *Table {
	t := NewTable(RequiredColumns...)
	t.Rows = make([]Row, 0, len(films))
	for _, f := range films {
		t.Rows = append(t.Rows, Row{
			ColumnPeriod: FormatNumber(f.Period),
			ColumnGenre:  f.Genre,
			ColumnGross:  FormatNumber(f.Gross),
			ColumnTitle:  f.Title,
		})
	}
	return t
}
