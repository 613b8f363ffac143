package entity

import "strings"

// ColumnType is the inferred type of a raw column.
type ColumnType string

const (
	ColumnText    ColumnType = "text"
	ColumnNumeric ColumnType = "numeric"
	ColumnDate    ColumnType = "date"
)

// RawTable represents the first sheet of an uploaded workbook exactly as loaded.
// Rows are padded to len(Columns).
type RawTable struct {
	Source  string                `json:"source"`
	Sheet   string                `json:"sheet"`
	Columns []string              `json:"columns"`
	Types   map[string]ColumnType `json:"types"`
	Rows    [][]string            `json:"rows"`
}

// ColumnIndex returns the position of the named column or -1.
func (t RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with exactly this name.
func (t RawTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Table is a generic tabular result ready for display or export.
// Cells hold strings, ints, or decimal.Decimal values.
type Table struct {
	Name    string          `json:"name"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// ColumnMapping binds each canonical field to one raw column name.
type ColumnMapping map[Field]string

// Clone returns an independent copy of the mapping.
func (m ColumnMapping) Clone() ColumnMapping {
	out := make(ColumnMapping, len(m))
	for f, c := range m {
		out[f] = c
	}
	return out
}

// String renders the mapping in schema order as "Field=Column" pairs.
func (m ColumnMapping) String() string {
	parts := make([]string, 0, len(CanonicalFields))
	for _, f := range CanonicalFields {
		if col, ok := m[f]; ok {
			parts = append(parts, f.String()+"="+col)
		}
	}
	return strings.Join(parts, ", ")
}
