package engine

import "fmt"

// ============================================================================
// ERROR TAXONOMY
// ============================================================================
// Every failure is deterministic and raised at the offending call; there are
// no transient modes and nothing is retried. Operations fail atomically: on
// error no partially built table is returned.
// ============================================================================

// CastError reports a raw value that cannot be interpreted as the declared
// column type. Row and Column are -1 when the failure has no table position
// (for example a direct ColumnType.Cast call).
type CastError struct {
	Value      Value
	TypeName   string
	Row        int
	Column     int
	ColumnName string
}

func (e *CastError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("cannot cast %v (%T) to %s", e.Value, e.Value, e.TypeName)
	}
	return fmt.Sprintf("cannot cast %v (%T) to %s at row %d, column %d (%q)",
		e.Value, e.Value, e.TypeName, e.Row, e.Column, e.ColumnName)
}

func castError(raw Value, typeName string) *CastError {
	return &CastError{Value: raw, TypeName: typeName, Row: -1, Column: -1}
}

// ColumnExistsError reports a column-name collision.
type ColumnExistsError struct {
	Name string
}

func (e *ColumnExistsError) Error() string {
	return fmt.Sprintf("column %q already exists", e.Name)
}

// ColumnDoesNotExistError reports a reference to an unknown column name.
type ColumnDoesNotExistError struct {
	Name string
}

func (e *ColumnDoesNotExistError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Name)
}

// ColumnTypeError reports an operation that requires a different column type,
// such as a numeric statistic on a text column.
type ColumnTypeError struct {
	Name string
	Have string
	Want string
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %q is %s, operation requires %s", e.Name, e.Have, e.Want)
}

// EmptyColumnError reports a statistic requested on a column with zero
// non-null values.
type EmptyColumnError struct {
	Name string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q has no non-null values", e.Name)
}

// DivisionError reports a zero denominator in a ratio operation.
type DivisionError struct {
	Row    int
	Column string
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("division by zero: column %q is zero at row %d", e.Column, e.Row)
}

// RowLengthError reports a constructor arity mismatch: a row whose cell count
// does not match the column count, or (Row == -1) a type list whose length
// does not match the name list.
type RowLengthError struct {
	Row  int
	Want int
	Got  int
}

func (e *RowLengthError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("have %d column types, want %d", e.Got, e.Want)
	}
	return fmt.Sprintf("row %d has %d cells, want %d", e.Row, e.Got, e.Want)
}

// SliceError reports an invalid Limit step.
type SliceError struct {
	Step int
}

func (e *SliceError) Error() string {
	return fmt.Sprintf("invalid slice step %d: step must be positive", e.Step)
}
