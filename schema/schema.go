package schema

import (
	"fmt"

	"github.com/go-sif/tabular"
)

// column describes the position and class of a column within a Schema
type column struct {
	idx   int
	class tabular.VariableClass
}

// schema is an ordered mapping from column names to VariableClasses
type schema struct {
	schema map[string]*column
	names  []string
}

// CreateSchema is a factory for Schemas
func CreateSchema() tabular.Schema {
	return &schema{
		schema: make(map[string]*column),
		names:  []string{},
	}
}

// CreateSchemaFromClasses builds a Schema containing the given categorical, continuous
// and label columns, in that order
func CreateSchemaFromClasses(categorical []string, continuous []string, label []string) (tabular.Schema, error) {
	s := CreateSchema()
	groups := []struct {
		class tabular.VariableClass
		names []string
	}{
		{tabular.Categorical, categorical},
		{tabular.Continuous, continuous},
		{tabular.Label, label},
	}
	for _, g := range groups {
		for _, name := range g.names {
			if _, err := s.CreateColumn(name, g.class); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Equals returns nil iff this and another Schema contain the same columns, in the same order, with the same classes
func (s *schema) Equals(otherSchema tabular.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	otherNames := otherSchema.ColumnNames()
	for i, name := range s.names {
		if otherNames[i] != name {
			return fmt.Errorf("Column %d is named %s in one schema and %s in the other", i, name, otherNames[i])
		}
		otherClass, err := otherSchema.ClassOf(name)
		if err != nil {
			return err
		}
		if otherClass != s.schema[name].class {
			return fmt.Errorf("Column %s classes do not match", name)
		}
	}
	return nil
}

// Clone returns a copy of this Schema
func (s *schema) Clone() tabular.Schema {
	newSchema := make(map[string]*column, len(s.schema))
	for k, v := range s.schema {
		newSchema[k] = &column{idx: v.idx, class: v.class}
	}
	return &schema{schema: newSchema, names: append([]string(nil), s.names...)}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// ClassOf returns the VariableClass of a particular column
func (s *schema) ClassOf(colName string) (tabular.VariableClass, error) {
	col, ok := s.schema[colName]
	if !ok {
		return "", fmt.Errorf("Schema does not contain column with name %s", colName)
	}
	return col.class, nil
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, class tabular.VariableClass) (newSchema tabular.Schema, err error) {
	if !class.IsColumnClass() {
		return nil, fmt.Errorf("Cannot create column %s with class %s", colName, class)
	}
	if _, containsColumn := s.schema[colName]; containsColumn {
		return nil, fmt.Errorf("Schema already contains column with name %s", colName)
	}
	s.schema[colName] = &column{idx: len(s.names), class: class}
	s.names = append(s.names, colName)
	return s, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	return append([]string(nil), s.names...)
}

// ColumnsOfClass returns the names of the columns with a particular class, in index order.
// The All class returns every column.
func (s *schema) ColumnsOfClass(class tabular.VariableClass) []string {
	names := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if class.Includes(s.schema[name].class) {
			names = append(names, name)
		}
	}
	return names
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *schema) ForEachColumn(fn func(name string, class tabular.VariableClass) error) error {
	for _, name := range s.names {
		if err := fn(name, s.schema[name].class); err != nil {
			return err
		}
	}
	return nil
}
