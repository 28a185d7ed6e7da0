package engine

import (
	"sort"
	"strings"
)

// ============================================================================
// ORDERING AND DEDUPLICATION
// ============================================================================

// OrderBy returns a new table with rows ordered by the named column,
// ascending (descending when reverse is true), using the column type's
// ordering with null before every non-null value. The sort is stable: rows
// with equal keys keep their original relative order, so composite orderings
// can be built by sorting repeatedly from least to most significant key.
func (t *Table) OrderBy(column string, reverse bool) (*Table, error) {
	col, ok := t.columns[column]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: column}
	}
	indices := ascendingIndices(t.rowCount)
	sort.SliceStable(indices, func(i, j int) bool {
		c := col.ctype.Compare(col.values[indices[i]], col.values[indices[j]])
		if reverse {
			return c > 0
		}
		return c < 0
	})
	return t.take(indices), nil
}

// OrderByKey orders rows by a caller-supplied key function. Keys are compared
// with CompareValues (natural ordering of the returned type, null first);
// returning a []Value gives a composite multi-column key. The sort is stable.
func (t *Table) OrderByKey(key func(Row) Value, reverse bool) *Table {
	keys := make([]Value, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		keys[i] = key(Row{table: t, index: i})
	}
	indices := ascendingIndices(t.rowCount)
	sort.SliceStable(indices, func(i, j int) bool {
		c := CompareValues(keys[indices[i]], keys[indices[j]])
		if reverse {
			return c > 0
		}
		return c < 0
	})
	return t.take(indices)
}

// Distinct deduplicates rows, keeping the first row observed for each
// distinct key, in order of first appearance. With no arguments the key is
// the entire row; otherwise it is the given columns' values.
func (t *Table) Distinct(keys ...string) (*Table, error) {
	keyCols := make([]*Column, 0, len(keys))
	if len(keys) == 0 {
		keyCols = t.Columns()
	} else {
		for _, name := range keys {
			col, ok := t.columns[name]
			if !ok {
				return nil, &ColumnDoesNotExistError{Name: name}
			}
			keyCols = append(keyCols, col)
		}
	}

	seen := make(map[string]bool, t.rowCount)
	indices := make([]int, 0, t.rowCount)
	var b strings.Builder
	for i := 0; i < t.rowCount; i++ {
		b.Reset()
		for _, col := range keyCols {
			appendCanonical(&b, col.values[i])
		}
		key := b.String()
		if !seen[key] {
			seen[key] = true
			indices = append(indices, i)
		}
	}
	return t.take(indices), nil
}

func ascendingIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
