// Package tabula provides typed, immutable in-memory tables with
// relational operations and exact-decimal statistics.
//
// Usage:
//
//	import "github.com/spektr-org/tabula/engine"
//
//	table, err := engine.New(rows,
//	    []engine.ColumnType{engine.Text, engine.Number},
//	    []string{"city", "population"},
//	)
//	top, err := table.OrderBy("population", true)
//	top, err = top.Limit(0, 10, 1)
//
// Every operation returns a new Table; the source table is never modified
// and can be reused. Numbers are arbitrary-precision decimals, never binary
// floats, so sums and averages stay exact to the input's decimal scale.
//
// CSV loading and export live in the helpers package; column-type inference
// lives in the schema package. The engine itself performs no I/O.
package tabula
