package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ============================================================================
// GROUPING AND AGGREGATION
// ============================================================================
// Two values belong to the same group iff the column type's Compare returns
// equal; nulls therefore form one group of their own. Group order is always
// the order of first appearance in the input.
// ============================================================================

// GroupEntry is one partition of a table: the distinct key value and the
// rows sharing it, same schema and relative order as the source.
type GroupEntry struct {
	Key   Value
	Table *Table
}

// GroupBy partitions rows by distinct value of the named column, one entry
// per distinct value in order of first appearance. No aggregation happens;
// this is the raw partition for manual per-group analysis.
func (t *Table) GroupBy(column string) ([]GroupEntry, error) {
	col, ok := t.columns[column]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: column}
	}

	grouped := make(map[string][]int)
	var order []string
	keyValue := make(map[string]Value)
	for i := 0; i < t.rowCount; i++ {
		key := canonicalKey(col.values[i])
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
			keyValue[key] = col.values[i]
		}
		grouped[key] = append(grouped[key], i)
	}

	entries := make([]GroupEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, GroupEntry{
			Key:   keyValue[key],
			Table: t.take(grouped[key]),
		})
	}
	return entries, nil
}

// Aggregation names one statistic over one source column.
type Aggregation struct {
	Column string
	Stat   Stat
}

// Aggregate groups rows by the named column and computes the requested
// statistics per group. The output has one row per distinct group value in
// first-appearance order, with columns: the group column, "<group>_count"
// (rows in the group), then "<column>_<stat>" per requested aggregation.
func (t *Table) Aggregate(groupColumn string, operations []Aggregation) (*Table, error) {
	groupCol, ok := t.columns[groupColumn]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: groupColumn}
	}
	for _, op := range operations {
		if _, ok := t.columns[op.Column]; !ok {
			return nil, &ColumnDoesNotExistError{Name: op.Column}
		}
		if !ValidStat(op.Stat) {
			return nil, fmt.Errorf("unknown statistic %q for column %q", op.Stat, op.Column)
		}
	}

	names := make([]string, 0, len(operations)+2)
	types := make([]ColumnType, 0, len(operations)+2)
	names = append(names, groupColumn, groupColumn+"_count")
	types = append(types, groupCol.ctype, Number)
	seen := map[string]bool{names[0]: true, names[1]: true}
	for _, op := range operations {
		name := op.Column + "_" + string(op.Stat)
		if seen[name] {
			return nil, &ColumnExistsError{Name: name}
		}
		seen[name] = true
		names = append(names, name)
		types = append(types, Number)
	}

	entries, err := t.GroupBy(groupColumn)
	if err != nil {
		return nil, err
	}

	colValues := make([][]Value, len(names))
	for i := range colValues {
		colValues[i] = make([]Value, len(entries))
	}
	for r, entry := range entries {
		colValues[0][r] = entry.Key
		colValues[1][r] = decimal.NewFromInt(int64(entry.Table.RowCount()))
		for i, op := range operations {
			col := entry.Table.columns[op.Column]
			v, err := col.Stat(op.Stat)
			if err != nil {
				return nil, fmt.Errorf("aggregate %s(%s) for group %v: %w", op.Stat, op.Column, entry.Key, err)
			}
			colValues[i+2][r] = v
		}
	}
	return newTable(names, types, colValues, len(entries)), nil
}
