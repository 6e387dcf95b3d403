package tabular

// Schema is an ordered list of column names, each tagged with
// the VariableClass of the column. It allows one to look up
// classes by name, define new columns, select columns by class, etc.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumColumns() int
	HasColumn(colName string) bool
	ClassOf(colName string) (VariableClass, error)
	CreateColumn(colName string, class VariableClass) (newSchema Schema, err error)
	ColumnNames() []string
	ColumnsOfClass(class VariableClass) []string
	ForEachColumn(fn func(name string, class VariableClass) error) error
}
