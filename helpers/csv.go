// Package helpers contains the thin I/O collaborators around the engine:
// CSV in, CSV out. The engine core never touches files or readers; these
// adapters only translate between delimited text and the construction and
// export interfaces of engine.Table.
package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/schema"
)

// Option configures CSV parsing.
type Option func(*config)

type config struct {
	types     []engine.ColumnType
	snakeCase bool
	comma     rune
}

// WithTypes declares the column types explicitly, skipping auto-detection.
func WithTypes(types []engine.ColumnType) Option {
	return func(c *config) { c.types = types }
}

// WithSnakeCaseHeaders normalizes header names: "Story Points" becomes
// "story_points".
func WithSnakeCaseHeaders() Option {
	return func(c *config) { c.snakeCase = true }
}

// WithComma sets the field delimiter (default ',').
func WithComma(comma rune) Option {
	return func(c *config) { c.comma = comma }
}

// FromCSV reads delimited text into a Table. The first record is the header
// (column names); remaining records are rows. Empty cells become nulls.
// Column types come from WithTypes or, absent that, from schema.Detect over
// the data rows.
func FromCSV(r io.Reader, opts ...Option) (*engine.Table, error) {
	cfg := &config{comma: ','}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.comma
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header record")
	}

	header := records[0]
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if cfg.snakeCase {
			h = toSnakeCase(h)
		}
		names[i] = h
	}
	data := records[1:]

	types := cfg.types
	if types == nil {
		if len(data) == 0 {
			// Header-only input: nothing to sample, default every column
			// to text.
			types = make([]engine.ColumnType, len(names))
			for i := range types {
				types[i] = engine.Text
			}
		} else {
			types = schema.Detect(data)
		}
	}
	if len(types) != len(names) {
		return nil, fmt.Errorf("read csv: %d columns but %d types", len(names), len(types))
	}

	rows := make([][]engine.Value, len(data))
	for r, record := range data {
		row := make([]engine.Value, len(names))
		for c := range names {
			if c >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[c])
			if cell == "" {
				continue // null
			}
			row[c] = cell
		}
		rows[r] = row
	}

	table, err := engine.New(rows, types, names)
	if err != nil {
		return nil, fmt.Errorf("build table from csv: %w", err)
	}
	return table, nil
}

// ToCSV writes the table as delimited text: one header record of column
// names, then one record per row. Nulls export as empty cells, numbers in
// plain decimal notation, dates as 2006-01-02, booleans as true/false.
func ToCSV(t *engine.Table, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = FormatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatValue renders one typed cell for delimited output. Null renders as
// the empty string.
func FormatValue(v engine.Value) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case decimal.Decimal:
		return tv.String()
	case bool:
		if tv {
			return "true"
		}
		return "false"
	case time.Time:
		return tv.Format(engine.DateLayout)
	}
	return fmt.Sprintf("%v", v)
}

// toSnakeCase converts "Column Name" to "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
