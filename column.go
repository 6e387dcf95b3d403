package tabular

import (
	"strconv"

	"github.com/go-sif/tabular/errors"
)

// ColumnType describes the type of the values stored in a Column
type ColumnType string

const (
	// Float64ColumnType is the type of a Float64Column
	Float64ColumnType ColumnType = "float64"
	// Int64ColumnType is the type of an Int64Column
	Int64ColumnType ColumnType = "int64"
	// StringColumnType is the type of a StringColumn
	StringColumnType ColumnType = "string"
)

// Column is a vector of homogeneously-typed values within a Batch
type Column interface {
	Len() int                 // Len returns the number of values in this Column
	Type() ColumnType         // Type returns the ColumnType of this Column
	Clone() Column            // Clone returns a copy of this Column
	ValueString(i int) string // ValueString produces a string representation of the value at index i
}

// Float64Column is a Column of float64 values. NaN represents a missing value.
type Float64Column []float64

// Len returns the number of values in this Column
func (c Float64Column) Len() int { return len(c) }

// Type returns the ColumnType of this Column
func (c Float64Column) Type() ColumnType { return Float64ColumnType }

// Clone returns a copy of this Column
func (c Float64Column) Clone() Column {
	return append(Float64Column(nil), c...)
}

// ValueString produces a string representation of the value at index i
func (c Float64Column) ValueString(i int) string {
	return strconv.FormatFloat(c[i], 'g', -1, 64)
}

// Int64Column is a Column of int64 values
type Int64Column []int64

// Len returns the number of values in this Column
func (c Int64Column) Len() int { return len(c) }

// Type returns the ColumnType of this Column
func (c Int64Column) Type() ColumnType { return Int64ColumnType }

// Clone returns a copy of this Column
func (c Int64Column) Clone() Column {
	return append(Int64Column(nil), c...)
}

// ValueString produces a string representation of the value at index i
func (c Int64Column) ValueString(i int) string {
	return strconv.FormatInt(c[i], 10)
}

// StringColumn is a Column of string values
type StringColumn []string

// Len returns the number of values in this Column
func (c StringColumn) Len() int { return len(c) }

// Type returns the ColumnType of this Column
func (c StringColumn) Type() ColumnType { return StringColumnType }

// Clone returns a copy of this Column
func (c StringColumn) Clone() Column {
	return append(StringColumn(nil), c...)
}

// ValueString produces a string representation of the value at index i
func (c StringColumn) ValueString(i int) string {
	return c[i]
}

// AsFloat64s returns the values of a numeric Column as float64s. A Float64Column
// is returned without copying, so callers must not modify the result.
func AsFloat64s(name string, col Column) ([]float64, error) {
	switch c := col.(type) {
	case Float64Column:
		return c, nil
	case Int64Column:
		vals := make([]float64, len(c))
		for i, v := range c {
			vals[i] = float64(v)
		}
		return vals, nil
	default:
		return nil, errors.ColumnTypeError{Column: name, Expected: "numeric", Actual: string(col.Type())}
	}
}

// AsKeys returns the values of a categorical Column as string keys.
// Int64 categories are keyed by their decimal representation.
func AsKeys(name string, col Column) ([]string, error) {
	switch c := col.(type) {
	case StringColumn:
		return c, nil
	case Int64Column:
		keys := make([]string, len(c))
		for i := range c {
			keys[i] = c.ValueString(i)
		}
		return keys, nil
	default:
		return nil, errors.ColumnTypeError{Column: name, Expected: "string or int64", Actual: string(col.Type())}
	}
}
