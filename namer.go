package tabular

import "fmt"

// ColumnNamer describes how an Op which does not replace its input columns names its outputs
type ColumnNamer struct {
	fn          func(column string) string
	description string
}

// DefaultNaming names outputs "<original>_<op id>"
func DefaultNaming() ColumnNamer {
	return ColumnNamer{}
}

// FuncNaming names outputs using fn. The description stands in for fn wherever a
// Workflow is described or persisted.
func FuncNaming(description string, fn func(column string) string) ColumnNamer {
	return ColumnNamer{fn: fn, description: description}
}

// Name returns the output name for an input column of the Op with the given identity
func (n ColumnNamer) Name(column string, opID string) string {
	if n.fn != nil {
		return n.fn(column)
	}
	return column + "_" + opID
}

// String produces a description of this naming rule which contains no executable code
func (n ColumnNamer) String() string {
	if n.fn != nil {
		return fmt.Sprintf("func(%s)", n.description)
	}
	return "default"
}
