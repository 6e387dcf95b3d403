package batch

import (
	"fmt"

	"github.com/go-sif/tabular"
)

// batchImpl is the internal implementation of Batch, storing one Column per Schema column
type batchImpl struct {
	schema  tabular.Schema
	numRows int
	columns map[string]tabular.Column
}

// Create creates a new Batch from a Schema and one Column per Schema column, all of equal length
func Create(schema tabular.Schema, columns map[string]tabular.Column) (tabular.Batch, error) {
	if len(columns) != schema.NumColumns() {
		return nil, fmt.Errorf("Batch has %d columns but schema has %d", len(columns), schema.NumColumns())
	}
	b := &batchImpl{
		schema:  schema.Clone(),
		numRows: -1,
		columns: make(map[string]tabular.Column, len(columns)),
	}
	for _, name := range schema.ColumnNames() {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("Batch is missing column %s", name)
		}
		if b.numRows == -1 {
			b.numRows = col.Len()
		} else if col.Len() != b.numRows {
			return nil, fmt.Errorf("Column %s has %d rows, expected %d", name, col.Len(), b.numRows)
		}
		b.columns[name] = col
	}
	if b.numRows == -1 {
		b.numRows = 0
	}
	return b, nil
}

// Schema returns the Schema of this Batch, which must not be modified directly
func (b *batchImpl) Schema() tabular.Schema {
	return b.schema
}

// NumRows returns the number of rows in this Batch
func (b *batchImpl) NumRows() int {
	return b.numRows
}

// GetColumn retrieves a Column by name
func (b *batchImpl) GetColumn(name string) (tabular.Column, error) {
	col, ok := b.columns[name]
	if !ok {
		return nil, fmt.Errorf("Batch does not contain column %s", name)
	}
	return col, nil
}

// SetColumn replaces an existing Column, or appends a new one with the given class
func (b *batchImpl) SetColumn(name string, class tabular.VariableClass, col tabular.Column) error {
	if col.Len() != b.numRows {
		return fmt.Errorf("Column %s has %d rows, expected %d", name, col.Len(), b.numRows)
	}
	if b.schema.HasColumn(name) {
		existing, err := b.schema.ClassOf(name)
		if err != nil {
			return err
		}
		if existing != class {
			return fmt.Errorf("Cannot replace %s column %s with a %s column", existing, name, class)
		}
	} else if _, err := b.schema.CreateColumn(name, class); err != nil {
		return err
	}
	b.columns[name] = col
	return nil
}

// Clone returns a deep copy of this Batch
func (b *batchImpl) Clone() tabular.Batch {
	columns := make(map[string]tabular.Column, len(b.columns))
	for name, col := range b.columns {
		columns[name] = col.Clone()
	}
	return &batchImpl{
		schema:  b.schema.Clone(),
		numRows: b.numRows,
		columns: columns,
	}
}
