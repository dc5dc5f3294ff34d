// package table holds flat records and the ordered tables built from them.
package table

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/desertthunder/tracktab/internal/shared"
)

// Field is one named cell of a [Record].
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for building a [Field].
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Record is a flat, ordered mapping of field name to value.
type Record []Field

// Get returns the first value stored under name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Missing, false
}

// Names returns the field names in order, without duplicates.
func (r Record) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		if !slices.Contains(names, f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

// MarshalJSON writes the record as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range r.Names() {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, _ := r.Get(name)
		val, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// Table is an ordered set of rows sharing one column list.
//
// Rows are positionally indexed from 0 unless the table carries row labels
// (see [NewLabeled]).
type Table struct {
	columns []string
	labels  []string
	rows    [][]Value
}

// Build assembles records into a table.
//
// Columns are the union of record keys in first-seen order; rows keep input order and
// absent cells are Missing. Each column named in numeric that exists is coerced with
// [ParseNumber]; names that don't exist are ignored.
func Build(records []Record, numeric ...string) *Table {
	t := &Table{}
	pos := map[string]int{}

	for _, rec := range records {
		for _, f := range rec {
			if _, ok := pos[f.Name]; !ok {
				pos[f.Name] = len(t.columns)
				t.columns = append(t.columns, f.Name)
			}
		}
	}

	t.rows = make([][]Value, 0, len(records))
	for _, rec := range records {
		row := make([]Value, len(t.columns))
		seen := make([]bool, len(t.columns))
		for _, f := range rec {
			i := pos[f.Name]
			if seen[i] {
				continue
			}
			seen[i] = true
			row[i] = f.Value
		}
		t.rows = append(t.rows, row)
	}

	for _, name := range numeric {
		i, ok := pos[name]
		if !ok {
			continue
		}
		for _, row := range t.rows {
			row[i] = ParseNumber(row[i])
		}
	}

	return t
}

// NewLabeled builds a table whose rows are addressed by label instead of position.
// Every row must have one value per column and one label.
func NewLabeled(columns, labels []string, rows [][]Value) *Table {
	if len(labels) != len(rows) {
		panic("table: label count does not match row count")
	}
	for _, row := range rows {
		if len(row) != len(columns) {
			panic("table: row width does not match column count")
		}
	}
	return &Table{
		columns: slices.Clone(columns),
		labels:  slices.Clone(labels),
		rows:    rows,
	}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Labeled reports whether rows carry explicit labels.
func (t *Table) Labeled() bool { return t.labels != nil }

// Label returns the index label of row i: its explicit label or its position.
func (t *Table) Label(i int) string {
	if t.labels != nil {
		return t.labels[i]
	}
	return strconv.Itoa(i)
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.columns, name)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Value returns the cell at row i in column name.
func (t *Table) Value(i int, name string) (Value, error) {
	c := t.ColumnIndex(name)
	if c < 0 {
		return Missing, &shared.ColumnNotFoundError{Column: name}
	}
	return t.rows[i][c], nil
}

// Row returns row i as a record in column order.
func (t *Table) Row(i int) Record {
	rec := make(Record, len(t.columns))
	for c, name := range t.columns {
		rec[c] = Field{Name: name, Value: t.rows[i][c]}
	}
	return rec
}

// Records returns every row as a record.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Column returns a copy of the values in column name.
func (t *Table) Column(name string) ([]Value, error) {
	c := t.ColumnIndex(name)
	if c < 0 {
		return nil, &shared.ColumnNotFoundError{Column: name}
	}
	vals := make([]Value, len(t.rows))
	for i, row := range t.rows {
		vals[i] = row[c]
	}
	return vals, nil
}

// IsNumeric reports whether column name holds at least one number and nothing but
// numbers and Missing.
func (t *Table) IsNumeric(name string) bool {
	c := t.ColumnIndex(name)
	if c < 0 {
		return false
	}
	found := false
	for _, row := range t.rows {
		switch row[c].Kind() {
		case KindNumber:
			found = true
		case KindMissing:
		default:
			return false
		}
	}
	return found
}

// NumericColumns returns the columns for which [Table.IsNumeric] holds, in column order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, name := range t.columns {
		if t.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// Reorder returns a new positional table whose row i is t's row order[i].
func (t *Table) Reorder(order []int) *Table {
	rows := make([][]Value, len(order))
	for i, src := range order {
		rows[i] = slices.Clone(t.rows[src])
	}
	return &Table{columns: slices.Clone(t.columns), rows: rows}
}
