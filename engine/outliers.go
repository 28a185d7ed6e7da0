package engine

import "github.com/shopspring/decimal"

// ============================================================================
// OUTLIER DETECTION
// ============================================================================
// Two classifiers over a Number column: deviation from the mean in units of
// standard deviation, and deviation from the median in units of median
// absolute deviation. Null values are never classified as outliers.
// ============================================================================

// DefaultDeviations is the conventional outlier threshold multiple.
var DefaultDeviations = decimal.NewFromInt(3)

// StdevOutliers returns the rows whose value in the named column deviates
// from the column mean by more than deviations standard deviations; with
// reject true, the complementary rows. Fails when the column holds no
// non-null values.
func (t *Table) StdevOutliers(column string, deviations decimal.Decimal, reject bool) (*Table, error) {
	col, err := t.numberColumn(column)
	if err != nil {
		return nil, err
	}
	mean, err := col.Mean()
	if err != nil {
		return nil, err
	}
	stdev, err := col.Stdev()
	if err != nil {
		return nil, err
	}
	return t.classify(col, mean, stdev.Mul(deviations), reject), nil
}

// MadOutliers returns the rows whose value in the named column deviates from
// the column median by more than deviations median absolute deviations; with
// reject true, the complementary rows. Fails when the column holds no
// non-null values.
func (t *Table) MadOutliers(column string, deviations decimal.Decimal, reject bool) (*Table, error) {
	col, err := t.numberColumn(column)
	if err != nil {
		return nil, err
	}
	median, err := col.Median()
	if err != nil {
		return nil, err
	}
	mad, err := col.Mad()
	if err != nil {
		return nil, err
	}
	return t.classify(col, median, mad.Mul(deviations), reject), nil
}

// classify selects rows where |value - center| > threshold (or the
// complement when reject is set), preserving row order.
func (t *Table) classify(col *Column, center, threshold decimal.Decimal, reject bool) *Table {
	indices := make([]int, 0, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		outlier := false
		if v := col.values[i]; v != nil {
			outlier = v.(decimal.Decimal).Sub(center).Abs().Cmp(threshold) > 0
		}
		if outlier != reject {
			indices = append(indices, i)
		}
	}
	return t.take(indices)
}
