package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/helpers"
)

// ============================================================================
// OUTPUT — render a table as pretty text, CSV, or JSON
// ============================================================================

func writeTable(w io.Writer, t *engine.Table, format string) error {
	switch format {
	case "csv":
		return helpers.ToCSV(t, w)
	case "json":
		return writeJSON(w, t)
	case "pretty":
		return writePretty(w, t)
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeJSON emits an array of name-keyed row objects. Cells are rendered the
// same way as CSV export; nulls become JSON null.
func writeJSON(w io.Writer, t *engine.Table) error {
	names := t.ColumnNames()
	out := make([]map[string]any, 0, t.RowCount())
	for _, row := range t.Rows() {
		obj := make(map[string]any, len(names))
		for i, name := range names {
			if row[i] == nil {
				obj[name] = nil
			} else {
				obj[name] = helpers.FormatValue(row[i])
			}
		}
		out = append(out, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writePretty emits an aligned text table with a header rule.
func writePretty(w io.Writer, t *engine.Table) error {
	names := t.ColumnNames()
	rows := t.Rows()

	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, v := range row {
			s := helpers.FormatValue(v)
			cells[r][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}

	writeRule := func() {
		for i := range names {
			fmt.Fprintf(w, "+%s", strings.Repeat("-", widths[i]+2))
		}
		fmt.Fprintln(w, "+")
	}

	writeRule()
	for i, name := range names {
		fmt.Fprintf(w, "| %-*s ", widths[i], name)
	}
	fmt.Fprintln(w, "|")
	writeRule()
	for _, row := range cells {
		for c, cell := range row {
			fmt.Fprintf(w, "| %-*s ", widths[c], cell)
		}
		fmt.Fprintln(w, "|")
	}
	writeRule()
	fmt.Fprintf(w, "%d rows\n", len(rows))
	return nil
}

// writeStats prints every descriptive statistic of one column as a
// two-column table (statistic, value).
func writeStats(w io.Writer, t *engine.Table, column, format string) error {
	col, err := t.Column(column)
	if err != nil {
		return err
	}

	stats := []engine.Stat{
		engine.StatSum, engine.StatMin, engine.StatMax, engine.StatMean,
		engine.StatMedian, engine.StatMode, engine.StatVariance,
		engine.StatStdev, engine.StatMad,
	}
	rows := make([][]engine.Value, 0, len(stats))
	for _, stat := range stats {
		v, err := col.Stat(stat)
		if err != nil {
			return err
		}
		rows = append(rows, []engine.Value{string(stat), v})
	}

	result, err := engine.New(rows,
		[]engine.ColumnType{engine.Text, engine.Number},
		[]string{"statistic", column})
	if err != nil {
		return err
	}
	return writeTable(w, result, format)
}
