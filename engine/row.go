package engine

// Row is an ephemeral, name-keyed view of one row across a table's columns.
// Rows are handed to predicate and compute callbacks and are only valid for
// the duration of the call; they hold no data of their own.
type Row struct {
	table *Table
	index int
}

// Get returns the value of the named column at this row, or nil when the
// column does not exist. Mirrors index-based view access: an unknown key
// reads as null rather than failing mid-callback.
func (r Row) Get(name string) Value {
	col, ok := r.table.columns[name]
	if !ok {
		return nil
	}
	return col.values[r.index]
}

// Lookup returns the value of the named column at this row and whether the
// column exists, for callers that need to distinguish a null cell from a
// missing column.
func (r Row) Lookup(name string) (Value, bool) {
	col, ok := r.table.columns[name]
	if !ok {
		return nil, false
	}
	return col.values[r.index], true
}

// Index returns the row's position within its table.
func (r Row) Index() int { return r.index }
