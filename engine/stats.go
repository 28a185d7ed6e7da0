package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// ============================================================================
// DESCRIPTIVE STATISTICS — Exact Decimal Arithmetic
// ============================================================================
// All statistics operate on a column's non-null values only and require the
// Number type. Additions and subtractions are exact; divisions and square
// roots are rounded to decimalScale fractional digits, documented per method.
// Results are cached on the column after the first request.
// ============================================================================

// decimalScale is the fixed rounding scale for inexact steps (division,
// square root): 16 fractional digits.
const decimalScale = 16

// Stat names a column statistic for Aggregate operations.
type Stat string

// The supported statistics.
const (
	StatSum      Stat = "sum"
	StatMean     Stat = "mean"
	StatMedian   Stat = "median"
	StatMode     Stat = "mode"
	StatMin      Stat = "min"
	StatMax      Stat = "max"
	StatVariance Stat = "variance"
	StatStdev    Stat = "stdev"
	StatMad      Stat = "mad"
)

// ValidStat reports whether s names a supported statistic.
func ValidStat(s Stat) bool {
	switch s {
	case StatSum, StatMean, StatMedian, StatMode, StatMin, StatMax,
		StatVariance, StatStdev, StatMad:
		return true
	}
	return false
}

type columnStats struct {
	count    int
	sum      decimal.Decimal
	min      decimal.Decimal
	max      decimal.Decimal
	mean     decimal.Decimal
	median   decimal.Decimal
	mode     decimal.Decimal
	variance decimal.Decimal
	stdev    decimal.Decimal
	mad      decimal.Decimal
}

// ensureStats derives and caches every statistic on first request.
func (c *Column) ensureStats() (*columnStats, error) {
	c.statsOnce.Do(func() {
		if c.ctype != Number {
			c.statsErr = &ColumnTypeError{Name: c.name, Have: c.ctype.Name(), Want: Number.Name()}
			return
		}
		c.stats = deriveStats(c.values)
	})
	return c.stats, c.statsErr
}

func deriveStats(values []Value) *columnStats {
	nums := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		if v != nil {
			nums = append(nums, v.(decimal.Decimal))
		}
	}
	s := &columnStats{count: len(nums)}
	if s.count == 0 {
		return s
	}

	sorted := make([]decimal.Decimal, len(nums))
	copy(sorted, nums)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	s.min = sorted[0]
	s.max = sorted[len(sorted)-1]

	s.sum = decimal.Zero
	for _, d := range nums {
		s.sum = s.sum.Add(d)
	}
	n := decimal.NewFromInt(int64(s.count))
	s.mean = s.sum.DivRound(n, decimalScale)
	s.median = medianOfSorted(sorted)
	s.mode = modeOfSorted(sorted)

	// Population variance: mean squared deviation from the (rounded) mean.
	sq := decimal.Zero
	for _, d := range nums {
		diff := d.Sub(s.mean)
		sq = sq.Add(diff.Mul(diff))
	}
	s.variance = sq.DivRound(n, decimalScale)
	s.stdev = decimalSqrt(s.variance)

	// Median absolute deviation from the median.
	devs := make([]decimal.Decimal, len(nums))
	for i, d := range nums {
		devs[i] = d.Sub(s.median).Abs()
	}
	sort.SliceStable(devs, func(i, j int) bool { return devs[i].Cmp(devs[j]) < 0 })
	s.mad = medianOfSorted(devs)

	return s
}

// medianOfSorted returns the central value, or for an even count the average
// of the two central values (exact division by two, rounded to decimalScale).
func medianOfSorted(sorted []decimal.Decimal) decimal.Decimal {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	two := decimal.NewFromInt(2)
	return sorted[mid-1].Add(sorted[mid]).DivRound(two, decimalScale)
}

// modeOfSorted returns the most frequent value. When several values share the
// maximum frequency, the smallest wins: runs are scanned in ascending order
// and a later run must be strictly more frequent to displace the current mode.
func modeOfSorted(sorted []decimal.Decimal) decimal.Decimal {
	mode := sorted[0]
	best, run := 0, 0
	for i := range sorted {
		if i > 0 && sorted[i].Cmp(sorted[i-1]) == 0 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
			mode = sorted[i]
		}
	}
	return mode
}

// decimalSqrt computes the square root by Newton iteration seeded from the
// float64 root, converging below 10^-(decimalScale+2) and rounding the result
// to decimalScale fractional digits.
func decimalSqrt(d decimal.Decimal) decimal.Decimal {
	if d.Sign() <= 0 {
		return decimal.Zero
	}
	guard := int32(decimalScale + 4)
	eps := decimal.New(1, -int32(decimalScale+2))
	two := decimal.NewFromInt(2)

	x := sqrtSeed(d)
	for i := 0; i < 64; i++ {
		next := x.Add(d.DivRound(x, guard)).DivRound(two, guard)
		if next.Sub(x).Abs().Cmp(eps) <= 0 {
			x = next
			break
		}
		x = next
	}
	return x.Round(decimalScale)
}

// sqrtSeed picks the Newton starting point: the float64 root where the value
// fits in a float64, otherwise 10^(m/2) where 10^m is the order of magnitude
// of d. Inputs beyond the float64 range must not reach NewFromFloat, which
// rejects infinities.
func sqrtSeed(d decimal.Decimal) decimal.Decimal {
	f, _ := d.Float64()
	if root := math.Sqrt(f); root > 0 && !math.IsInf(root, 0) {
		return decimal.NewFromFloat(root)
	}
	mag := int32(d.NumDigits()) + d.Exponent() - 1
	return decimal.New(1, mag/2)
}

// ── Column statistic accessors ──────────────────────────────────────────────

// Sum returns the exact sum of non-null values. An all-null or empty column
// sums to zero, the additive identity.
func (c *Column) Sum() (decimal.Decimal, error) {
	s, err := c.ensureStats()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if s.count == 0 {
		return decimal.Zero, nil
	}
	return s.sum, nil
}

// Min returns the smallest non-null value.
func (c *Column) Min() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.min })
}

// Max returns the largest non-null value.
func (c *Column) Max() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.max })
}

// Mean returns sum / count, rounded to 16 fractional digits.
func (c *Column) Mean() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.mean })
}

// Median returns the central value after full ordering; for an even count,
// the average of the two central values.
func (c *Column) Median() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.median })
}

// Mode returns the most frequent value; frequency ties break to the smallest
// value in the type's order.
func (c *Column) Mode() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.mode })
}

// Variance returns the population variance (mean squared deviation from the
// mean), rounded to 16 fractional digits.
func (c *Column) Variance() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.variance })
}

// Stdev returns the square root of the population variance, rounded to 16
// fractional digits.
func (c *Column) Stdev() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.stdev })
}

// Mad returns the median of absolute deviations from the median.
func (c *Column) Mad() (decimal.Decimal, error) {
	return c.stat(func(s *columnStats) decimal.Decimal { return s.mad })
}

// Stat returns the named statistic.
func (c *Column) Stat(stat Stat) (decimal.Decimal, error) {
	switch stat {
	case StatSum:
		return c.Sum()
	case StatMean:
		return c.Mean()
	case StatMedian:
		return c.Median()
	case StatMode:
		return c.Mode()
	case StatMin:
		return c.Min()
	case StatMax:
		return c.Max()
	case StatVariance:
		return c.Variance()
	case StatStdev:
		return c.Stdev()
	case StatMad:
		return c.Mad()
	}
	return decimal.Decimal{}, fmt.Errorf("unknown statistic %q", stat)
}

func (c *Column) stat(pick func(*columnStats) decimal.Decimal) (decimal.Decimal, error) {
	s, err := c.ensureStats()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if s.count == 0 {
		return decimal.Decimal{}, &EmptyColumnError{Name: c.name}
	}
	return pick(s), nil
}
