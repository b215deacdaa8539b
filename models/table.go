package models

// Row maps a column header to its raw cell text. A header that is not a key
// of the row is a missing cell.
type Row map[string]string

// Table is the unified, untyped result of loading one or more CSV files.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether name is part of the table header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append concatenates other onto t. Rows keep their order; the header becomes
// the union of both headers in first-seen order.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	for _, c := range other.Columns {
		if !t.HasColumn(c) {
			t.Columns = append(t.Columns, c)
		}
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// Concat joins tables in order into a new table. No rows are deduplicated.
func Concat(tables ...*Table) *Table {
	out := NewTable()
	for _, tbl := range tables {
		out.Append(tbl)
	}
	return out
}
