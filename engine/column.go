package engine

import "sync"

// ============================================================================
// COLUMN — Named, Typed, Ordered Values
// ============================================================================

// Column is one named, typed, ordered sequence of values within a Table.
// Columns are immutable after construction; a transformed table always owns
// fresh Column objects. Descriptive statistics are derived lazily from the
// column's values and cached; the cache is guarded so tables stay safe for
// concurrent readers.
type Column struct {
	name   string
	ctype  ColumnType
	values []Value

	// Non-owning back-reference, used only to validate that the column's
	// length matches the table's row count. Never used for lifetime control.
	table *Table

	statsOnce sync.Once
	stats     *columnStats
	statsErr  error
}

func newColumn(name string, ctype ColumnType, values []Value, table *Table) *Column {
	return &Column{name: name, ctype: ctype, values: values, table: table}
}

// Name returns the column's name, unique within its table.
func (c *Column) Name() string { return c.name }

// Type returns the column's value type.
func (c *Column) Type() ColumnType { return c.ctype }

// Len returns the number of values, equal to the table's row count.
func (c *Column) Len() int { return len(c.values) }

// Value returns the value at row i (nil for null).
func (c *Column) Value(i int) Value { return c.values[i] }

// Values returns a copy of the column's values. The copy keeps the column
// immutable regardless of what the caller does with the slice.
func (c *Column) Values() []Value {
	out := make([]Value, len(c.values))
	copy(out, c.values)
	return out
}

// Any reports whether fn returns true for at least one value.
func (c *Column) Any(fn func(Value) bool) bool {
	for _, v := range c.values {
		if fn(v) {
			return true
		}
	}
	return false
}

// All reports whether fn returns true for every value.
func (c *Column) All(fn func(Value) bool) bool {
	for _, v := range c.values {
		if !fn(v) {
			return false
		}
	}
	return true
}

// Valid reports whether the column's length matches its owning table's row
// count. The back-reference is non-owning and exists only for this check; it
// never extends the table's lifetime.
func (c *Column) Valid() bool {
	return c.table == nil || len(c.values) == c.table.rowCount
}
