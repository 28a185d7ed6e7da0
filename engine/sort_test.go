package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderByAscendingNullsFirst(t *testing.T) {
	table := cityTable(t)
	sorted, err := table.OrderBy("population", false)
	require.NoError(t, err)
	nameCol, _ := sorted.Column("name")
	assert.Equal(t, "Stavanger", nameCol.Value(0)) // null population first
	assert.Equal(t, "Trondheim", nameCol.Value(1))
	assert.Equal(t, "Bergen", nameCol.Value(2))
	assert.Equal(t, "Oslo", nameCol.Value(3))

	// Source order untouched.
	orig, _ := table.Column("name")
	assert.Equal(t, "Oslo", orig.Value(0))
}

func TestOrderByDescending(t *testing.T) {
	table := cityTable(t)
	sorted, err := table.OrderBy("population", true)
	require.NoError(t, err)
	nameCol, _ := sorted.Column("name")
	assert.Equal(t, "Oslo", nameCol.Value(0))
	assert.Equal(t, "Stavanger", nameCol.Value(3)) // null last when reversed
}

func TestOrderByStable(t *testing.T) {
	// All keys equal: output order must be input order.
	table := mustTable(t,
		[][]Value{{"a", "1"}, {"b", "1"}, {"c", "1"}, {"d", "1"}},
		[]ColumnType{Text, Number},
		[]string{"tag", "key"},
	)
	sorted, err := table.OrderBy("key", false)
	require.NoError(t, err)
	tagCol, _ := sorted.Column("tag")
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, tagCol.Value(i))
	}

	reversed, err := table.OrderBy("key", true)
	require.NoError(t, err)
	tagCol, _ = reversed.Column("tag")
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, tagCol.Value(i))
	}
}

func TestOrderByUnknownColumn(t *testing.T) {
	table := cityTable(t)
	_, err := table.OrderBy("nope", false)
	var de *ColumnDoesNotExistError
	require.ErrorAs(t, err, &de)
}

func TestOrderByKeyComposite(t *testing.T) {
	table := mustTable(t,
		[][]Value{
			{"fruit", "30"},
			{"veg", "10"},
			{"fruit", "10"},
			{"veg", "20"},
		},
		[]ColumnType{Text, Number},
		[]string{"kind", "price"},
	)
	sorted := table.OrderByKey(func(r Row) Value {
		return []Value{r.Get("kind"), r.Get("price")}
	}, false)
	priceCol, _ := sorted.Column("price")
	kindCol, _ := sorted.Column("kind")
	wantKind := []string{"fruit", "fruit", "veg", "veg"}
	wantPrice := []string{"10", "30", "10", "20"}
	for i := range wantKind {
		assert.Equal(t, wantKind[i], kindCol.Value(i))
		assert.True(t, priceCol.Value(i).(decimal.Decimal).Equal(num(wantPrice[i])))
	}
}

func TestDistinctWholeRow(t *testing.T) {
	table := mustTable(t,
		[][]Value{{"a", "1"}, {"a", "1"}, {"a", "2"}, {"b", "1"}},
		[]ColumnType{Text, Number},
		[]string{"x", "y"},
	)
	dedup, err := table.Distinct()
	require.NoError(t, err)
	assert.Equal(t, 3, dedup.RowCount())
}

func TestDistinctKeyedKeepsFirst(t *testing.T) {
	table := mustTable(t,
		[][]Value{{"a", "1"}, {"b", "2"}, {"a", "3"}, {"c", "4"}},
		[]ColumnType{Text, Number},
		[]string{"key", "seq"},
	)
	dedup, err := table.Distinct("key")
	require.NoError(t, err)
	assert.Equal(t, 3, dedup.RowCount())
	seqCol, _ := dedup.Column("seq")
	// First occurrence wins, in first-appearance order.
	for i, want := range []string{"1", "2", "4"} {
		assert.True(t, seqCol.Value(i).(decimal.Decimal).Equal(num(want)))
	}

	_, err = table.Distinct("nope")
	var de *ColumnDoesNotExistError
	require.ErrorAs(t, err, &de)
}

func TestDistinctEqualScaleNumbers(t *testing.T) {
	table := mustTable(t,
		[][]Value{{"1.0"}, {"1.00"}, {"1"}},
		[]ColumnType{Number},
		[]string{"v"},
	)
	dedup, err := table.Distinct()
	require.NoError(t, err)
	assert.Equal(t, 1, dedup.RowCount())
}
