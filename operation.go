package tabular

// An Op is a stateless transform over a subset of the columns of a Batch. It
// declares which columns it targets, whether it replaces them or creates new
// ones, which Stats (if any) it needs, and the per-column computation using
// the Accumulators fitted for those Stats.
//
// Ops are immutable values. Their identity, returned by ID(), is the key under
// which fitted statistics are stored and retrieved.
type Op interface {
	ID() string               // ID returns the explicit name of this Op, or the canonical lowercase form of its type name
	Class() VariableClass     // Class returns the class of the columns this Op targets by default
	Selector() ColumnSelector // Selector returns the rule which selects this Op's input columns
	Replace() bool            // Replace returns true iff this Op transforms its input columns in-place
	Naming() ColumnNamer      // Naming returns the rule which names new columns, if Replace() is false
	StatsRequired() []Stat    // StatsRequired returns the Stats which must be fitted before this Op can be applied

	// Transform computes the output values for one input column, given one
	// fitted Accumulator per required Stat (in the order of StatsRequired)
	Transform(column string, values Column, accs []Accumulator) (Column, error)
}
