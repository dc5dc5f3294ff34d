// package formatter renders tables to the terminal and exports them (CSV, JSON, Markdown, SQLite)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
)

// Format names an output format accepted by --format.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatSQLite   Format = "sqlite"
)

// Formats lists every supported format in help order.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON, FormatMarkdown, FormatSQLite}

// labelColumn heads the row labels of a labeled (statistics) table.
const labelColumn = "stat"

// ParseFormat validates a format name. An empty name is [FormatTable].
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatTable, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, s)
}

// Extension returns the file extension used when saving f.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatSQLite:
		return ".db"
	default:
		return ".txt"
	}
}

func header(t *table.Table) []string {
	if t.Labeled() {
		return append([]string{labelColumn}, t.Columns()...)
	}
	return t.Columns()
}

// cells renders row i as strings, Missing as "".
func cells(t *table.Table, i int) []string {
	row := t.Row(i)
	out := make([]string, 0, len(row)+1)
	if t.Labeled() {
		out = append(out, t.Label(i))
	}
	for _, f := range row {
		out = append(out, f.Value.String())
	}
	return out
}

// ExportToCSV converts a table to CSV with a header row of column names
func ExportToCSV(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header(t)); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range t.Len() {
		if err := writer.Write(cells(t, i)); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a table to an indented JSON array of objects in column order.
//
// Missing values are written as null.
func ExportToJSON(t *table.Table) ([]byte, error) {
	records := make([]table.Record, 0, t.Len())
	for i := range t.Len() {
		rec := t.Row(i)
		if t.Labeled() {
			rec = append(table.Record{table.F(labelColumn, table.Text(t.Label(i)))}, rec...)
		}
		records = append(records, rec)
	}
	return shared.MarshalJSON(records, true)
}

// ExportToMarkdown converts a table to a Markdown document with an optional title heading
func ExportToMarkdown(t *table.Table, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	}

	cols := header(t)
	writeMarkdownRow(&buf, cols)

	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(&buf, sep)

	for i := range t.Len() {
		writeMarkdownRow(&buf, cells(t, i))
	}

	buf.WriteString(fmt.Sprintf("\n**Rows**: %d\n", t.Len()))
	return buf.Bytes(), nil
}

func writeMarkdownRow(buf *bytes.Buffer, row []string) {
	escaped := make([]string, len(row))
	for i, c := range row {
		c = strings.ReplaceAll(c, "|", `\|`)
		escaped[i] = strings.ReplaceAll(c, "\n", " ")
	}
	buf.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = cellStyle.Foreground(lipgloss.Color("#04B575"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// RenderTable draws a bordered terminal table.
func RenderTable(t *table.Table) string {
	rows := make([][]string, 0, t.Len())
	for i := range t.Len() {
		rows = append(rows, cells(t, i))
	}

	labeled := t.Labeled()
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return headerStyle
			case labeled && col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		}).
		Headers(header(t)...).
		Rows(rows...).
		String()
}

// Render encodes a table for stdout. SQLite has no stdout form.
func Render(t *table.Table, f Format, title string) ([]byte, error) {
	switch f {
	case FormatTable:
		return []byte(RenderTable(t) + "\n"), nil
	case FormatCSV:
		return ExportToCSV(t)
	case FormatJSON:
		return ExportToJSON(t)
	case FormatMarkdown:
		return ExportToMarkdown(t, title)
	default:
		return nil, fmt.Errorf("%w: %s cannot be written to stdout", shared.ErrUnsupportedFormat, f)
	}
}

// WriteSQLite writes a table into the SQLite database at path, replacing any table with the same name.
//
// Numeric columns are REAL and the rest TEXT; Missing values are NULL.
func WriteSQLite(t *table.Table, path, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty table name", shared.ErrInvalidArgument)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	cols := header(t)
	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		typ := "TEXT"
		if !(t.Labeled() && i == 0) && t.IsNumeric(c) {
			typ = "REAL"
		}
		quoted[i] = shared.QuoteIdent(c)
		defs[i] = quoted[i] + " " + typ
		marks[i] = "?"
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ident := shared.QuoteIdent(name)
	if _, err := tx.Exec("DROP TABLE IF EXISTS " + ident); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", ident, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident, strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range t.Len() {
		args := make([]any, 0, len(cols))
		if t.Labeled() {
			args = append(args, t.Label(i))
		}
		for _, f := range t.Row(i) {
			args = append(args, sqlValue(f.Value))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func sqlValue(v table.Value) any {
	switch v.Kind() {
	case table.KindNumber:
		f, _ := v.Float()
		return f
	case table.KindMissing:
		return nil
	default:
		return v.String()
	}
}

// Metadata describes a saved export.
type Metadata struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	Command   string    `json:"command"`
	Query     string    `json:"query,omitempty"`
	RankBy    string    `json:"rank_by,omitempty"`
	Stats     bool      `json:"stats,omitempty"`
	Format    Format    `json:"format"`
	Rows      int       `json:"rows"`
	Columns   []string  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMetadataJSON generates the indented JSON written next to an export
func ToMetadataJSON(meta Metadata) ([]byte, error) {
	return shared.MarshalJSON(meta, true)
}

// ExportResult contains the paths of files created by WriteExport
type ExportResult struct {
	DataFile     string
	MetadataFile string
}

// WriteExport writes a table in format f to {base}{ext} with a {base}_metadata.json file.
//
// Row and column counts in meta are filled from t. SQLite exports use meta.Command as the table name.
func WriteExport(t *table.Table, f Format, base string, meta Metadata) (*ExportResult, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty export path", shared.ErrInvalidArgument)
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dataFile := base + f.Extension()
	if f == FormatSQLite {
		name := meta.Command
		if name == "" {
			name = "tracks"
		}
		if err := WriteSQLite(t, dataFile, name); err != nil {
			return nil, fmt.Errorf("failed to write SQLite export: %w", err)
		}
	} else {
		data := []byte(plainTable(t))
		if f != FormatTable {
			var err error
			if data, err = Render(t, f, meta.Command); err != nil {
				return nil, fmt.Errorf("failed to generate %s: %w", f, err)
			}
		}
		if err := os.WriteFile(dataFile, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write data file: %w", err)
		}
	}

	meta.Format = f
	meta.Rows = t.Len()
	meta.Columns = header(t)
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	metadataJSON, err := ToMetadataJSON(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := base + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &ExportResult{DataFile: dataFile, MetadataFile: metadataFile}, nil
}

// plainTable is the terminal table without ANSI styling, for files.
func plainTable(t *table.Table) string {
	rows := make([][]string, 0, t.Len())
	for i := range t.Len() {
		rows = append(rows, cells(t, i))
	}
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(header(t)...).
		Rows(rows...).
		String() + "\n"
}
