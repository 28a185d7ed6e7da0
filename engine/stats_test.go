package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberColumn(t *testing.T, values ...Value) *Column {
	t.Helper()
	rows := make([][]Value, len(values))
	for i, v := range values {
		rows[i] = []Value{v}
	}
	table := mustTable(t, rows, []ColumnType{Number}, []string{"v"})
	col, err := table.Column("v")
	require.NoError(t, err)
	return col
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(num(want)), "got %s want %s", got, want)
}

func TestMeanExactDecimals(t *testing.T) {
	col := numberColumn(t, "1.00", "2.00", "3.00")
	mean, err := col.Mean()
	require.NoError(t, err)
	// Exactly 2.00 — no binary floating point artifact.
	assertDecimal(t, "2.00", mean)
}

func TestSumMinMax(t *testing.T) {
	col := numberColumn(t, "0.1", "0.2", nil, "0.3")
	sum, err := col.Sum()
	require.NoError(t, err)
	assertDecimal(t, "0.6", sum) // famously 0.30000000000000004 in binary floats

	min, err := col.Min()
	require.NoError(t, err)
	assertDecimal(t, "0.1", min)

	max, err := col.Max()
	require.NoError(t, err)
	assertDecimal(t, "0.3", max)
}

func TestSumEmptyIsZero(t *testing.T) {
	col := numberColumn(t, nil, nil)
	sum, err := col.Sum()
	require.NoError(t, err)
	assertDecimal(t, "0", sum)
}

func TestStatsEmptyColumn(t *testing.T) {
	col := numberColumn(t, nil, nil)
	for _, stat := range []Stat{StatMean, StatMedian, StatMode, StatMin, StatMax, StatVariance, StatStdev, StatMad} {
		_, err := col.Stat(stat)
		var ee *EmptyColumnError
		require.ErrorAs(t, err, &ee, "stat %s", stat)
		assert.Equal(t, "v", ee.Name)
	}
}

func TestStatsNonNumberColumn(t *testing.T) {
	table := cityTable(t)
	col, _ := table.Column("name")
	_, err := col.Mean()
	var te *ColumnTypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "text", te.Have)
}

func TestMedianOddAndEven(t *testing.T) {
	odd := numberColumn(t, "3", "1", "2")
	m, err := odd.Median()
	require.NoError(t, err)
	assertDecimal(t, "2", m)

	even := numberColumn(t, "4", "1", "3", "2")
	m, err = even.Median()
	require.NoError(t, err)
	assertDecimal(t, "2.5", m)
}

func TestModeTieBreaksToSmallest(t *testing.T) {
	col := numberColumn(t, "2", "1", "2", "1", "3")
	m, err := col.Mode()
	require.NoError(t, err)
	assertDecimal(t, "1", m)

	single := numberColumn(t, "5", "5", "7")
	m, err = single.Mode()
	require.NoError(t, err)
	assertDecimal(t, "5", m)
}

func TestVarianceAndStdev(t *testing.T) {
	// Classic dataset: mean 5, population variance 4, stdev 2.
	col := numberColumn(t, "2", "4", "4", "4", "5", "5", "7", "9")
	v, err := col.Variance()
	require.NoError(t, err)
	assertDecimal(t, "4", v)

	sd, err := col.Stdev()
	require.NoError(t, err)
	assertDecimal(t, "2", sd)
}

func TestStdevInexactRoot(t *testing.T) {
	col := numberColumn(t, "0", "2", "0", "2")
	v, err := col.Variance()
	require.NoError(t, err)
	assertDecimal(t, "1", v)

	col = numberColumn(t, "1", "3", "1", "3")
	sd, err := col.Stdev()
	require.NoError(t, err)
	assertDecimal(t, "1", sd)
}

func TestMad(t *testing.T) {
	col := numberColumn(t, "1", "1", "2", "2", "4", "6", "9")
	m, err := col.Mad()
	require.NoError(t, err)
	assertDecimal(t, "1", m)
}

func TestStatsIgnoreNulls(t *testing.T) {
	col := numberColumn(t, nil, "10", nil, "20")
	mean, err := col.Mean()
	require.NoError(t, err)
	assertDecimal(t, "15", mean)
}

func TestStatsCached(t *testing.T) {
	col := numberColumn(t, "1", "2", "3")
	a, err := col.Mean()
	require.NoError(t, err)
	b, err := col.Mean()
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestDecimalSqrt(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0", "0"},
		{"1", "1"},
		{"4", "2"},
		{"156816", "396"},
		{"0.25", "0.5"},
	}
	for _, tc := range cases {
		assertDecimal(t, tc.want, decimalSqrt(num(tc.in)))
	}

	// sqrt(2) rounded to 16 fractional digits.
	assertDecimal(t, "1.414213562373095", decimalSqrt(num("2")))
}

func TestDecimalSqrtBeyondFloat64Range(t *testing.T) {
	// Magnitudes past ~1e308 overflow float64; the seed must come from the
	// decimal's own exponent instead of math.Sqrt.
	assertDecimal(t, "1e200", decimalSqrt(num("1e400")))
	assertDecimal(t, "2e200", decimalSqrt(num("4e400")))
}

func TestStdevHugeValues(t *testing.T) {
	// The squared deviations here exceed the float64 range; this must yield
	// a value, not a panic.
	col := numberColumn(t, "1e200", "2e200", "3e200")
	sd, err := col.Stdev()
	require.NoError(t, err)
	// sqrt(2/3) * 1e200 ≈ 8.1650e199.
	assert.True(t, sd.Cmp(num("8.16e199")) > 0, "stdev %s too small", sd)
	assert.True(t, sd.Cmp(num("8.17e199")) < 0, "stdev %s too large", sd)
}
