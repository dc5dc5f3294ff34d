package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/desertthunder/tracktab/internal/formatter"
	"github.com/desertthunder/tracktab/internal/ranking"
	"github.com/desertthunder/tracktab/internal/stats"
	"github.com/desertthunder/tracktab/internal/table"
	"github.com/urfave/cli/v3"
)

// outputFlags are shared by every command that produces a table.
func outputFlags() []cli.Flag {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (" + strings.Join(names, ", ") + ")",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write to this path (extension added) instead of stdout",
		},
		&cli.StringFlag{
			Name:  "rank-by",
			Usage: "Sort rows by a column, highest first",
		},
		&cli.BoolFlag{
			Name:  "rank",
			Usage: "Shorthand for --rank-by " + ranking.DefaultMetric,
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "Show mean, std, min and max of the numeric columns instead of the rows",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "Browse the table in the terminal viewer",
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Save to the output directory with a metadata file",
		},
	}
}

// request describes what produced a table, for titles, file names and metadata.
type request struct {
	source  string
	command string
	query   string
}

func (q request) title() string {
	if q.query == "" {
		return fmt.Sprintf("%s %s", q.source, q.command)
	}
	return fmt.Sprintf("%s %s: %s", q.source, q.command, q.query)
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

// baseName builds {source}_{command}[_{query}] in lowercase with runs of other characters as "-".
func (q request) baseName() string {
	parts := []string{q.source, q.command}
	if q.query != "" {
		parts = append(parts, q.query)
	}
	for i, p := range parts {
		parts[i] = strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(p), "-"), "-")
	}
	return strings.Join(parts, "_")
}

// emit applies ranking and statistics to t and writes it where the output flags say.
func (r *Runner) emit(cmd *cli.Command, t *table.Table, req request) error {
	formatName := cmd.String("format")
	if formatName == "" {
		formatName = r.config.Output.Format
	}
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	rankBy := cmd.String("rank-by")
	if rankBy == "" && cmd.Bool("rank") {
		rankBy = ranking.DefaultMetric
	}
	if rankBy != "" {
		if t, err = ranking.RankBy(t, rankBy); err != nil {
			return err
		}
		r.logger.Debug("ranked", "column", rankBy)
	}

	if cmd.Bool("interactive") {
		return r.viewer(req.title(), t)
	}

	if cmd.Bool("stats") {
		t = stats.Describe(t)
	}

	r.logger.Info("table ready", "source", req.source, "command", req.command, "rows", t.Len())

	base := cmd.String("output")
	if base == "" && (cmd.Bool("save") || format == formatter.FormatSQLite) {
		base = filepath.Join(r.config.Output.Directory, req.baseName())
	}
	if base != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return r.save(t, format, base, req, rankBy, cmd.Bool("stats"))
	}

	data, err := formatter.Render(t, format, req.title())
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) save(t *table.Table, format formatter.Format, base string, req request, rankBy string, withStats bool) error {
	result, err := formatter.WriteExport(t, format, base, formatter.Metadata{
		RunID:     r.runID,
		Source:    req.source,
		Command:   req.command,
		Query:     req.query,
		RankBy:    rankBy,
		Stats:     withStats,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	r.logger.Info("export written", "file", result.DataFile, "metadata", result.MetadataFile)
	r.writePlain("✓ %d rows written to %s\n", t.Len(), result.DataFile)
	r.writePlain("✓ Metadata written to %s\n", result.MetadataFile)
	return nil
}
