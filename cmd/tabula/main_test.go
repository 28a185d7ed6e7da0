package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/helpers"
)

func TestParseAggregations(t *testing.T) {
	ops, err := parseAggregations("revenue:sum, revenue:mean")
	require.NoError(t, err)
	assert.Equal(t, []engine.Aggregation{
		{Column: "revenue", Stat: engine.StatSum},
		{Column: "revenue", Stat: engine.StatMean},
	}, ops)

	_, err = parseAggregations("revenue")
	require.Error(t, err)

	_, err = parseAggregations("revenue:bogus")
	require.Error(t, err)

	ops, err = parseAggregations("")
	require.NoError(t, err)
	assert.Nil(t, ops)
}

func TestTransformPipeline(t *testing.T) {
	table, err := helpers.FromCSV(strings.NewReader(
		"name,score\nc,3\na,1\nc,3\nb,2\n"))
	require.NoError(t, err)

	out, err := transform(table, "name,score", "*", "score", true, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount())
	nameCol, _ := out.Column("name")
	assert.Equal(t, "c", nameCol.Value(0))
	assert.Equal(t, "b", nameCol.Value(1))

	_, err = transform(table, "missing", "", "", false, 0)
	require.Error(t, err)
}

func TestWritePretty(t *testing.T) {
	table, err := helpers.FromCSV(strings.NewReader("a,b\nx,1\n,2\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, table, "pretty"))
	text := buf.String()
	assert.Contains(t, text, "| a |")
	assert.Contains(t, text, "2 rows")

	require.Error(t, writeTable(&buf, table, "yaml"))
}

func TestWriteStats(t *testing.T) {
	table, err := helpers.FromCSV(strings.NewReader("v\n1.00\n2.00\n3.00\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, table, "v", "csv"))
	text := buf.String()
	assert.Contains(t, text, "statistic,v")
	assert.Contains(t, text, "sum,6.00")
}
