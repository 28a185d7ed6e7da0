package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/helpers"
)

// ============================================================================
// TABULA CLI — typed tables and exact statistics from the shell
// ============================================================================

const version = "0.1.0"

func main() {
	filePath := flag.String("file", "", "Path to CSV data file (required)")
	selectCols := flag.String("select", "", "Comma-separated columns to project")
	distinctCols := flag.String("distinct", "", "Deduplicate by these comma-separated columns ('*' = whole row)")
	sortCol := flag.String("sort", "", "Column to sort by")
	desc := flag.Bool("desc", false, "Sort descending")
	head := flag.Int("head", 0, "Keep only the first N rows (0 = all)")
	statsCol := flag.String("stats", "", "Print descriptive statistics for this column")
	groupBy := flag.String("group-by", "", "Group rows by this column")
	aggSpec := flag.String("agg", "", "Aggregations as col:stat[,col:stat...] (with --group-by)")
	outliersCol := flag.String("outliers", "", "Detect outliers in this column")
	method := flag.String("method", "stdev", "Outlier method: stdev or mad")
	deviations := flag.String("deviations", "3", "Outlier threshold in deviation multiples")
	reject := flag.Bool("reject", false, "Output non-outliers instead of outliers")
	format := flag.String("format", "pretty", "Output format: pretty, csv, json")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	snake := flag.Bool("snake-headers", false, "Normalize header names to snake_case")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `tabula — typed tables with exact-decimal statistics

Usage:
  tabula --file data.csv --stats amount
  tabula --file data.csv --group-by region --agg "revenue:sum,revenue:mean" --format csv
  tabula --file data.csv --outliers latency --method mad --deviations 3
  tabula --file data.csv --sort revenue --desc --head 10

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("tabula %s\n", version)
		return
	}

	logger := newLogger(*verbose)

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *filePath).Msg("cannot open data file")
	}
	defer f.Close()

	var opts []helpers.Option
	if *snake {
		opts = append(opts, helpers.WithSnakeCaseHeaders())
	}
	table, err := helpers.FromCSV(f, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load table")
	}
	logger.Debug().
		Int("rows", table.RowCount()).
		Strs("columns", table.ColumnNames()).
		Msg("table loaded")

	table, err = transform(table, *selectCols, *distinctCols, *sortCol, *desc, *head)
	if err != nil {
		logger.Fatal().Err(err).Msg("transform failed")
	}

	out := os.Stdout
	if *outFile != "" {
		out, err = os.Create(*outFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *outFile).Msg("cannot create output file")
		}
		defer out.Close()
	}

	switch {
	case *statsCol != "":
		err = writeStats(out, table, *statsCol, *format)
	case *groupBy != "":
		ops, parseErr := parseAggregations(*aggSpec)
		if parseErr != nil {
			logger.Fatal().Err(parseErr).Msg("invalid --agg")
		}
		var result *engine.Table
		result, err = table.Aggregate(*groupBy, ops)
		if err == nil {
			err = writeTable(out, result, *format)
		}
	case *outliersCol != "":
		devs, convErr := decimal.NewFromString(*deviations)
		if convErr != nil {
			logger.Fatal().Err(convErr).Msg("invalid --deviations")
		}
		var result *engine.Table
		switch *method {
		case "stdev":
			result, err = table.StdevOutliers(*outliersCol, devs, *reject)
		case "mad":
			result, err = table.MadOutliers(*outliersCol, devs, *reject)
		default:
			logger.Fatal().Str("method", *method).Msg("unknown outlier method")
		}
		if err == nil {
			logger.Debug().Int("rows", result.RowCount()).Msg("outlier classification done")
			err = writeTable(out, result, *format)
		}
	default:
		err = writeTable(out, table, *format)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("operation failed")
	}
}

// transform applies the row-shaping flags in a fixed order:
// select, distinct, sort, head.
func transform(t *engine.Table, selectCols, distinctCols, sortCol string, desc bool, head int) (*engine.Table, error) {
	var err error
	if selectCols != "" {
		if t, err = t.Select(splitList(selectCols)...); err != nil {
			return nil, err
		}
	}
	if distinctCols != "" {
		keys := splitList(distinctCols)
		if len(keys) == 1 && keys[0] == "*" {
			keys = nil
		}
		if t, err = t.Distinct(keys...); err != nil {
			return nil, err
		}
	}
	if sortCol != "" {
		if t, err = t.OrderBy(sortCol, desc); err != nil {
			return nil, err
		}
	}
	if head > 0 {
		if t, err = t.Limit(0, head, 1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// parseAggregations parses "col:stat,col:stat" into Aggregation values.
func parseAggregations(spec string) ([]engine.Aggregation, error) {
	if spec == "" {
		return nil, nil
	}
	var ops []engine.Aggregation
	for _, part := range splitList(spec) {
		col, stat, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("aggregation %q must be col:stat", part)
		}
		if !engine.ValidStat(engine.Stat(stat)) {
			return nil, fmt.Errorf("unknown statistic %q", stat)
		}
		ops = append(ops, engine.Aggregation{Column: col, Stat: engine.Stat(stat)})
	}
	return ops, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
