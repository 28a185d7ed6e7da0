package engine

// ============================================================================
// TABLE — Immutable Collection of Typed Columns
// ============================================================================
// A Table is constructed once from rows + types + names and never changes.
// Every operation returns a brand-new Table; the receiver can be reused and
// is always safe to read concurrently.
// ============================================================================

// Table is an immutable rectangular dataset: ordered named typed columns
// sharing one row count. Rows are addressed by position only; there is no
// row identity that survives a transformation.
type Table struct {
	names    []string
	columns  map[string]*Column
	rowCount int
}

// New builds a Table from raw rows. Every cell is cast through its column's
// type; the first invalid cell fails with a *CastError carrying the row and
// column position. Column names must be unique and match the type count;
// every row must have exactly one cell per column.
func New(rows [][]Value, types []ColumnType, names []string) (*Table, error) {
	if len(types) != len(names) {
		return nil, &RowLengthError{Row: -1, Want: len(names), Got: len(types)}
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, &ColumnExistsError{Name: name}
		}
		seen[name] = true
	}

	colValues := make([][]Value, len(names))
	for i := range colValues {
		colValues[i] = make([]Value, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, &RowLengthError{Row: r, Want: len(names), Got: len(row)}
		}
		for c, raw := range row {
			cast, err := types[c].Cast(raw)
			if err != nil {
				if ce, ok := err.(*CastError); ok {
					ce.Row, ce.Column, ce.ColumnName = r, c, names[c]
				}
				return nil, err
			}
			colValues[c][r] = cast
		}
	}

	return newTable(names, types, colValues, len(rows)), nil
}

// newTable assembles a table from already-cast column value slices.
// Internal operations use this to skip re-casting.
func newTable(names []string, types []ColumnType, colValues [][]Value, rows int) *Table {
	t := &Table{
		names:    append([]string(nil), names...),
		columns:  make(map[string]*Column, len(names)),
		rowCount: rows,
	}
	for i, name := range names {
		t.columns[name] = newColumn(name, types[i], colValues[i], t)
	}
	return t
}

// ── Accessors ───────────────────────────────────────────────────────────────

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	return append([]string(nil), t.names...)
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: name}
	}
	return col, nil
}

// Columns returns the table's columns in schema order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.names))
	for i, name := range t.names {
		out[i] = t.columns[name]
	}
	return out
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return t.rowCount }

// Row returns a view of the row at index i. The view is only valid while the
// table is reachable.
func (t *Table) Row(i int) Row { return Row{table: t, index: i} }

// Rows exports the table's typed values as ordered rows, nulls as nil.
// Together with ColumnNames this is sufficient to re-serialize or rebuild
// the table; reconstructing from Rows yields an identical table.
func (t *Table) Rows() [][]Value {
	cols := t.Columns()
	rows := make([][]Value, t.rowCount)
	for r := 0; r < t.rowCount; r++ {
		row := make([]Value, len(cols))
		for c, col := range cols {
			row[c] = col.values[r]
		}
		rows[r] = row
	}
	return rows
}

// types returns the column types in schema order.
func (t *Table) types() []ColumnType {
	out := make([]ColumnType, len(t.names))
	for i, name := range t.names {
		out[i] = t.columns[name].ctype
	}
	return out
}

// take materializes a new table holding the given row indices, in order.
// This is the single row-selection primitive behind Where, OrderBy, Distinct,
// Limit and the outlier classifiers.
func (t *Table) take(indices []int) *Table {
	colValues := make([][]Value, len(t.names))
	for c, name := range t.names {
		src := t.columns[name].values
		vals := make([]Value, len(indices))
		for i, idx := range indices {
			vals[i] = src[idx]
		}
		colValues[c] = vals
	}
	return newTable(t.names, t.types(), colValues, len(indices))
}

// ── Relational operations ───────────────────────────────────────────────────

// Select projects the table to the given columns, in the given order, with
// row order and values unchanged.
func (t *Table) Select(names ...string) (*Table, error) {
	types := make([]ColumnType, len(names))
	colValues := make([][]Value, len(names))
	for i, name := range names {
		col, ok := t.columns[name]
		if !ok {
			return nil, &ColumnDoesNotExistError{Name: name}
		}
		types[i] = col.ctype
		vals := make([]Value, len(col.values))
		copy(vals, col.values)
		colValues[i] = vals
	}
	return newTable(names, types, colValues, t.rowCount), nil
}

// Where returns the rows for which the predicate is true, in original order.
// A predicate that matches nothing yields a valid zero-row table with the
// same schema.
func (t *Table) Where(pred func(Row) bool) *Table {
	indices := make([]int, 0, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		if pred(Row{table: t, index: i}) {
			indices = append(indices, i)
		}
	}
	return t.take(indices)
}

// End marks an open-ended Limit slice ("to the last row").
const End = -1

// Limit slices rows by position with half-open semantics: rows from start up
// to but excluding stop, every step-th row. stop < 0 (End) means the end of
// the table. A negative step is an error; zero is deliberately rejected as
// well, since a zero step can never advance past start.
func (t *Table) Limit(start, stop, step int) (*Table, error) {
	if step < 1 {
		return nil, &SliceError{Step: step}
	}
	if start < 0 {
		start = 0
	}
	if stop < 0 || stop > t.rowCount {
		stop = t.rowCount
	}
	var indices []int
	for i := start; i < stop; i += step {
		indices = append(indices, i)
	}
	return t.take(indices), nil
}
