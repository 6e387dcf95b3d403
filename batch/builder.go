package batch

import (
	"fmt"
	"math"

	"github.com/go-sif/tabular"
)

// ColumnTypeForClass returns the ColumnType which parsers produce for columns of a class.
// Categorical values are kept as strings; everything else is parsed as float64.
func ColumnTypeForClass(class tabular.VariableClass) tabular.ColumnType {
	if class == tabular.Categorical {
		return tabular.StringColumnType
	}
	return tabular.Float64ColumnType
}

// Builder builds a Batch row by row. Used in the implementation of DataSourceParsers.
type Builder struct {
	schema   tabular.Schema
	names    []string
	types    []tabular.ColumnType
	floats   [][]float64
	strings  [][]string
	numRows  int
	capacity int
}

// CreateBuilder creates a Builder for Batches of at most capacity rows
func CreateBuilder(schema tabular.Schema, capacity int) *Builder {
	names := schema.ColumnNames()
	b := &Builder{
		schema:   schema,
		names:    names,
		types:    make([]tabular.ColumnType, len(names)),
		floats:   make([][]float64, len(names)),
		strings:  make([][]string, len(names)),
		capacity: capacity,
	}
	for i, name := range names {
		class, _ := schema.ClassOf(name)
		b.types[i] = ColumnTypeForClass(class)
		if b.types[i] == tabular.StringColumnType {
			b.strings[i] = make([]string, 0, capacity)
		} else {
			b.floats[i] = make([]float64, 0, capacity)
		}
	}
	return b
}

// ColumnNames returns the columns of the Batch being built, in order
func (b *Builder) ColumnNames() []string {
	return b.names
}

// ColumnType returns the type of the idx-th column
func (b *Builder) ColumnType(idx int) tabular.ColumnType {
	return b.types[idx]
}

// IsFull returns true iff the Batch being built has reached its capacity
func (b *Builder) IsFull() bool {
	return b.numRows >= b.capacity
}

// NumRows returns the number of rows appended so far
func (b *Builder) NumRows() int {
	return b.numRows
}

// SetFloat64 sets the value of the idx-th column for the row being appended
func (b *Builder) SetFloat64(idx int, v float64) error {
	if b.types[idx] != tabular.Float64ColumnType {
		return fmt.Errorf("Column %s is not a float64 column", b.names[idx])
	}
	b.floats[idx] = append(b.floats[idx], v)
	return nil
}

// SetString sets the value of the idx-th column for the row being appended
func (b *Builder) SetString(idx int, v string) error {
	if b.types[idx] != tabular.StringColumnType {
		return fmt.Errorf("Column %s is not a string column", b.names[idx])
	}
	b.strings[idx] = append(b.strings[idx], v)
	return nil
}

// SetNil sets the idx-th column of the row being appended to its missing value (NaN or "")
func (b *Builder) SetNil(idx int) {
	if b.types[idx] == tabular.StringColumnType {
		b.strings[idx] = append(b.strings[idx], "")
	} else {
		b.floats[idx] = append(b.floats[idx], math.NaN())
	}
}

// EndRow completes the row being appended, verifying that every column was set
func (b *Builder) EndRow() error {
	if b.IsFull() {
		return fmt.Errorf("Batch is full")
	}
	for i := range b.names {
		if b.length(i) != b.numRows+1 {
			return fmt.Errorf("Row %d has no value for column %s", b.numRows, b.names[i])
		}
	}
	b.numRows++
	return nil
}

// Build produces a Batch from the complete rows appended so far, and resets the Builder
func (b *Builder) Build() (tabular.Batch, error) {
	columns := make(map[string]tabular.Column, len(b.names))
	for i, name := range b.names {
		if b.types[i] == tabular.StringColumnType {
			columns[name] = tabular.StringColumn(b.strings[i][:b.numRows])
			b.strings[i] = make([]string, 0, b.capacity)
		} else {
			columns[name] = tabular.Float64Column(b.floats[i][:b.numRows])
			b.floats[i] = make([]float64, 0, b.capacity)
		}
	}
	b.numRows = 0
	return Create(b.schema, columns)
}

func (b *Builder) length(idx int) int {
	if b.types[idx] == tabular.StringColumnType {
		return len(b.strings[idx])
	}
	return len(b.floats[idx])
}
