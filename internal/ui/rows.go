package ui

import (
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/tracktab/internal/table"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32
)

// tableColumns sizes one [btable.Column] per column of t to fit its widest cell.
func tableColumns(t *table.Table) []btable.Column {
	names := t.Columns()
	cols := make([]btable.Column, len(names))
	for c, name := range names {
		width := lipgloss.Width(name)
		vals, _ := t.Column(name)
		for _, v := range vals {
			width = max(width, lipgloss.Width(v.String()))
		}
		cols[c] = btable.Column{Title: name, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}
	return cols
}

// tableRows renders every row of t, Missing as "".
func tableRows(t *table.Table) []btable.Row {
	rows := make([]btable.Row, t.Len())
	for i := range rows {
		rec := t.Row(i)
		row := make(btable.Row, len(rec))
		for c, f := range rec {
			row[c] = f.Value.String()
		}
		rows[i] = row
	}
	return rows
}
