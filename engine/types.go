package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// COLUMN TYPES — Casting and Ordering per Value Kind
// ============================================================================
// Four value kinds: Text, Number, Boolean, Date. Each knows how to coerce a
// raw cell into its typed form and how to order two typed values. Null (nil)
// is a member of every type and sorts before every non-null value.
// ============================================================================

// Value is one typed cell. A nil Value is null. Non-null values are one of:
// string (Text), decimal.Decimal (Number), bool (Boolean), time.Time (Date).
type Value = any

// ColumnType describes how a column casts and orders its values.
type ColumnType interface {
	// Name returns the type's identifier ("text", "number", "boolean", "date").
	Name() string

	// Cast coerces a raw value into this type's representation.
	// nil passes through as null. A raw value that cannot be interpreted
	// as this type yields a *CastError (without row/column position; the
	// caller fills those in).
	Cast(raw Value) (Value, error)

	// Compare orders two already-cast values: negative when a < b, zero when
	// equal, positive when a > b. Null sorts before every non-null value.
	Compare(a, b Value) int
}

// The closed set of column types.
var (
	Text    ColumnType = textType{}
	Number  ColumnType = numberType{}
	Boolean ColumnType = boolType{}
	Date    ColumnType = dateType{}
)

// ── Text ────────────────────────────────────────────────────────────────────

type textType struct{}

func (textType) Name() string { return "text" }

func (textType) Cast(raw Value) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, castError(raw, "text")
}

func (textType) Compare(a, b Value) int {
	if c, done := compareNulls(a, b); done {
		return c
	}
	return strings.Compare(a.(string), b.(string))
}

// ── Number ──────────────────────────────────────────────────────────────────

type numberType struct{}

func (numberType) Name() string { return "number" }

func (numberType) Cast(raw Value) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, castError(raw, "number")
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		// Binary floats convert via their shortest decimal representation.
		return decimal.NewFromFloat(v), nil
	}
	return nil, castError(raw, "number")
}

func (numberType) Compare(a, b Value) int {
	if c, done := compareNulls(a, b); done {
		return c
	}
	return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
}

// ── Boolean ─────────────────────────────────────────────────────────────────

var boolTokens = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true,
	"false": false, "f": false, "no": false, "n": false, "0": false,
}

type boolType struct{}

func (boolType) Name() string { return "boolean" }

func (boolType) Cast(raw Value) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		if b, ok := boolTokens[strings.ToLower(strings.TrimSpace(v))]; ok {
			return b, nil
		}
	}
	return nil, castError(raw, "boolean")
}

// Compare orders false before true.
func (boolType) Compare(a, b Value) int {
	if c, done := compareNulls(a, b); done {
		return c
	}
	av, bv := a.(bool), b.(bool)
	switch {
	case av == bv:
		return 0
	case !av:
		return -1
	default:
		return 1
	}
}

// ── Date ────────────────────────────────────────────────────────────────────

// DateLayout is the canonical date format for casting and export.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

type dateType struct{}

func (dateType) Name() string { return "date" }

func (dateType) Cast(raw Value) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return truncateToDate(v), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateToDate(t), nil
			}
		}
	}
	return nil, castError(raw, "date")
}

func (dateType) Compare(a, b Value) int {
	if c, done := compareNulls(a, b); done {
		return c
	}
	at, bt := a.(time.Time), b.(time.Time)
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	default:
		return 0
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ============================================================================
// GENERIC VALUE ORDERING — for caller-supplied sort keys
// ============================================================================

// compareNulls handles the null cases of a comparison. done is false when
// both values are non-null and the caller must compare them itself.
func compareNulls(a, b Value) (c int, done bool) {
	switch {
	case a == nil && b == nil:
		return 0, true
	case a == nil:
		return -1, true
	case b == nil:
		return 1, true
	}
	return 0, false
}

// CompareValues orders two values by the natural ordering of their dynamic
// type, with null before non-null. Numeric kinds (int, int64, float64,
// decimal.Decimal) are compared as decimals. A []Value compares element by
// element, which is the composite-key idiom for multi-column sorts.
// Values of unrelated types fall back to ordering by type name so the result
// is still a total order.
func CompareValues(a, b Value) int {
	if c, done := compareNulls(a, b); done {
		return c
	}
	if ad, ok := toDecimal(a); ok {
		if bd, ok := toDecimal(b); ok {
			return ad.Cmp(bd)
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if _, ok := b.(bool); ok {
			return Boolean.Compare(a, b)
		}
	case time.Time:
		if _, ok := b.(time.Time); ok {
			return Date.Compare(a, b)
		}
	case []Value:
		if bv, ok := b.([]Value); ok {
			for i := 0; i < len(av) && i < len(bv); i++ {
				if c := CompareValues(av[i], bv[i]); c != 0 {
					return c
				}
			}
			return len(av) - len(bv)
		}
	}
	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

func toDecimal(v Value) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	}
	return decimal.Decimal{}, false
}

// ============================================================================
// CANONICAL KEYS — collision-free encoding for grouping and deduplication
// ============================================================================
// Two cast values of the same type encode to the same key iff Compare says
// they are equal. Numbers are normalized so 1.0 and 1.00 share a key; text is
// length-prefixed so separator characters cannot collide.
// ============================================================================

func appendCanonical(b *strings.Builder, v Value) {
	switch tv := v.(type) {
	case nil:
		b.WriteString("n;")
	case string:
		fmt.Fprintf(b, "s%d:%s;", len(tv), tv)
	case decimal.Decimal:
		b.WriteString("d")
		b.WriteString(normalizeDecimal(tv))
		b.WriteString(";")
	case bool:
		if tv {
			b.WriteString("bt;")
		} else {
			b.WriteString("bf;")
		}
	case time.Time:
		b.WriteString("t")
		b.WriteString(tv.Format(DateLayout))
		b.WriteString(";")
	default:
		fmt.Fprintf(b, "?%v;", tv)
	}
}

func canonicalKey(v Value) string {
	var b strings.Builder
	appendCanonical(&b, v)
	return b.String()
}

// normalizeDecimal strips trailing fractional zeros so numerically equal
// decimals of different scales encode identically.
func normalizeDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	s := d.String()
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
