package tabular

// A Batch is a portion of a tabular dataset, consisting of one Column per
// Schema column, all of equal length. Batches are manipulated in-place by Ops.
type Batch interface {
	Schema() Schema                                               // Schema returns the class-tagged Schema of this Batch
	NumRows() int                                                 // NumRows returns the number of rows in this Batch
	GetColumn(name string) (Column, error)                        // GetColumn retrieves a Column by name
	SetColumn(name string, class VariableClass, col Column) error // SetColumn replaces an existing Column, or appends a new one with the given class
	Clone() Batch                                                 // Clone returns a deep copy of this Batch
}
