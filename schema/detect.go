package schema

import (
	"strings"

	"github.com/spektr-org/tabula/engine"
)

// sampleCap bounds how many non-empty cells per column vote on a type.
const sampleCap = 250

// Detect infers one ColumnType per column from raw string rows. Empty cells
// are nulls and do not vote. A column where every sample casts as Number is
// Number; otherwise Boolean, then Date, then Text. A column with no samples
// at all is Text.
//
// Number wins over Boolean so that 0/1 indicator columns stay numeric;
// columns using word tokens (true/false, yes/no) still detect as Boolean.
func Detect(rows [][]string) []engine.ColumnType {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	types := make([]engine.ColumnType, width)
	for c := 0; c < width; c++ {
		types[c] = detectColumn(columnSamples(rows, c))
	}
	return types
}

// DetectConfig pairs a header row with detected types for the data rows.
func DetectConfig(header []string, rows [][]string) Config {
	return Config{
		Names: append([]string(nil), header...),
		Types: Detect(rows),
	}
}

func columnSamples(rows [][]string, c int) []string {
	samples := make([]string, 0, sampleCap)
	for _, row := range rows {
		if c >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[c])
		if cell == "" {
			continue
		}
		samples = append(samples, cell)
		if len(samples) == sampleCap {
			break
		}
	}
	return samples
}

func detectColumn(samples []string) engine.ColumnType {
	if len(samples) == 0 {
		return engine.Text
	}
	for _, candidate := range []engine.ColumnType{engine.Number, engine.Boolean, engine.Date} {
		if allCast(candidate, samples) {
			return candidate
		}
	}
	return engine.Text
}

func allCast(t engine.ColumnType, samples []string) bool {
	for _, s := range samples {
		if _, err := t.Cast(s); err != nil {
			return false
		}
	}
	return true
}
