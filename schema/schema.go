// Package schema infers column types for tabular data arriving as raw
// strings, typically a parsed CSV. Detection is sample-based: each column's
// non-empty cells vote, and the most specific type every sample satisfies
// wins (Number, then Boolean, then Date, then Text).
package schema

import "github.com/spektr-org/tabula/engine"

// Config describes the shape of a dataset: ordered column names and their
// detected (or declared) types. It is everything the engine constructor and
// the CSV adapter need to agree on.
type Config struct {
	Names []string
	Types []engine.ColumnType
}

// TypeNames returns the type identifiers in column order.
func (c Config) TypeNames() []string {
	out := make([]string, len(c.Types))
	for i, t := range c.Types {
		out[i] = t.Name()
	}
	return out
}

// TypeByName resolves a type identifier ("text", "number", "boolean",
// "date") to its ColumnType.
func TypeByName(name string) (engine.ColumnType, bool) {
	switch name {
	case engine.Text.Name():
		return engine.Text, true
	case engine.Number.Name():
		return engine.Number, true
	case engine.Boolean.Name():
		return engine.Boolean, true
	case engine.Date.Name():
		return engine.Date, true
	}
	return nil, false
}
