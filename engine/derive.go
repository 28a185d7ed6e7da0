package engine

import "github.com/shopspring/decimal"

// ============================================================================
// DERIVED COLUMNS
// ============================================================================

// Compute returns a new table with one appended column whose value at each
// row is columnType.Cast(fn(row)). Fails with *ColumnExistsError on a name
// collision and with *CastError (carrying the row index) when a produced
// value cannot be cast.
func (t *Table) Compute(name string, columnType ColumnType, fn func(Row) Value) (*Table, error) {
	if _, exists := t.columns[name]; exists {
		return nil, &ColumnExistsError{Name: name}
	}

	values := make([]Value, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		cast, err := columnType.Cast(fn(Row{table: t, index: i}))
		if err != nil {
			if ce, ok := err.(*CastError); ok {
				ce.Row, ce.Column, ce.ColumnName = i, len(t.names), name
			}
			return nil, err
		}
		values[i] = cast
	}
	return t.append(name, columnType, values), nil
}

// PercentChange appends a Number column holding
// (after - before) / before * 100 for each row, in exact decimal arithmetic
// rounded to 16 fractional digits. A row where either input is null yields
// null. A zero "before" value fails the whole operation with a
// *DivisionError carrying the row index; no partial table is produced.
func (t *Table) PercentChange(beforeColumn, afterColumn, newColumnName string) (*Table, error) {
	if _, exists := t.columns[newColumnName]; exists {
		return nil, &ColumnExistsError{Name: newColumnName}
	}
	before, err := t.numberColumn(beforeColumn)
	if err != nil {
		return nil, err
	}
	after, err := t.numberColumn(afterColumn)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	values := make([]Value, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		bv, av := before.values[i], after.values[i]
		if bv == nil || av == nil {
			continue
		}
		b := bv.(decimal.Decimal)
		a := av.(decimal.Decimal)
		if b.IsZero() {
			return nil, &DivisionError{Row: i, Column: beforeColumn}
		}
		values[i] = a.Sub(b).Mul(hundred).DivRound(b, decimalScale)
	}
	return t.append(newColumnName, Number, values), nil
}

// append builds a new table = receiver's columns plus one already-cast column.
func (t *Table) append(name string, columnType ColumnType, values []Value) *Table {
	names := make([]string, 0, len(t.names)+1)
	types := make([]ColumnType, 0, len(t.names)+1)
	colValues := make([][]Value, 0, len(t.names)+1)
	for _, existing := range t.names {
		col := t.columns[existing]
		names = append(names, existing)
		types = append(types, col.ctype)
		vals := make([]Value, len(col.values))
		copy(vals, col.values)
		colValues = append(colValues, vals)
	}
	names = append(names, name)
	types = append(types, columnType)
	colValues = append(colValues, values)
	return newTable(names, types, colValues, t.rowCount)
}

// numberColumn fetches a column and checks it holds numbers.
func (t *Table) numberColumn(name string) (*Column, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: name}
	}
	if col.ctype != Number {
		return nil, &ColumnTypeError{Name: name, Have: col.ctype.Name(), Want: Number.Name()}
	}
	return col, nil
}
