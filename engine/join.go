package engine

// ============================================================================
// JOINS
// ============================================================================
// Equality joins on one key column per side, using the key column type's
// equality (nulls match nulls, consistent with Compare). Output order is
// deterministic: self rows in original order, and within one self row the
// matching other rows in the other table's original order. Every matching
// pair is emitted; duplicate keys multiply.
// ============================================================================

// InnerJoin emits one row per matching pair, concatenating both rows'
// columns. Rows without a match on either side are dropped. Both key columns
// are retained; an other-side column whose name collides with a self-side
// column is renamed with a "_right" suffix.
func (t *Table) InnerJoin(keyColumn string, other *Table, otherKeyColumn string) (*Table, error) {
	return t.join(keyColumn, other, otherKeyColumn, false)
}

// LeftOuterJoin is InnerJoin, plus one output row for every self row without
// a match, with all other-side columns null.
func (t *Table) LeftOuterJoin(keyColumn string, other *Table, otherKeyColumn string) (*Table, error) {
	return t.join(keyColumn, other, otherKeyColumn, true)
}

func (t *Table) join(keyColumn string, other *Table, otherKeyColumn string, outer bool) (*Table, error) {
	selfKey, ok := t.columns[keyColumn]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: keyColumn}
	}
	otherKey, ok := other.columns[otherKeyColumn]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: otherKeyColumn}
	}
	if selfKey.ctype != otherKey.ctype {
		return nil, &ColumnTypeError{
			Name: otherKeyColumn,
			Have: otherKey.ctype.Name(),
			Want: selfKey.ctype.Name(),
		}
	}

	// Output schema: self columns, then other columns with collisions renamed.
	names := t.ColumnNames()
	types := t.types()
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	for _, name := range other.names {
		out := name
		for taken[out] {
			out += "_right"
		}
		taken[out] = true
		names = append(names, out)
		types = append(types, other.columns[name].ctype)
	}

	// Bucket the other side's rows by key, preserving row order per bucket.
	buckets := make(map[string][]int, other.rowCount)
	for i := 0; i < other.rowCount; i++ {
		key := canonicalKey(otherKey.values[i])
		buckets[key] = append(buckets[key], i)
	}

	// Probe self rows in order; -1 marks an unmatched outer row.
	var selfIdx, otherIdx []int
	for i := 0; i < t.rowCount; i++ {
		matches := buckets[canonicalKey(selfKey.values[i])]
		if len(matches) == 0 {
			if outer {
				selfIdx = append(selfIdx, i)
				otherIdx = append(otherIdx, -1)
			}
			continue
		}
		for _, j := range matches {
			selfIdx = append(selfIdx, i)
			otherIdx = append(otherIdx, j)
		}
	}

	colValues := make([][]Value, len(names))
	for c, name := range t.names {
		src := t.columns[name].values
		vals := make([]Value, len(selfIdx))
		for r, idx := range selfIdx {
			vals[r] = src[idx]
		}
		colValues[c] = vals
	}
	for c, name := range other.names {
		src := other.columns[name].values
		vals := make([]Value, len(otherIdx))
		for r, idx := range otherIdx {
			if idx >= 0 {
				vals[r] = src[idx]
			}
		}
		colValues[len(t.names)+c] = vals
	}
	return newTable(names, types, colValues, len(selfIdx)), nil
}
