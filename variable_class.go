package tabular

// VariableClass describes the role of a column within a Workflow, which determines
// the default targets of class-generic Ops
type VariableClass string

const (
	// Categorical indicates a column holding category values
	Categorical VariableClass = "categorical"
	// Continuous indicates a column holding numeric values
	Continuous VariableClass = "continuous"
	// Label indicates a column holding training targets
	Label VariableClass = "label"
	// All indicates an Op which may act on columns of any class. It is never the class of a column.
	All VariableClass = "all"
)

// Includes returns true iff columns of the other class are candidates for an Op of this class
func (c VariableClass) Includes(other VariableClass) bool {
	return c == All || c == other
}

// IsColumnClass returns true iff this class may be assigned to a column
func (c VariableClass) IsColumnClass() bool {
	return c == Categorical || c == Continuous || c == Label
}
