package tabular

// An Accumulator is the streaming state of one Stat over one column. Values are
// siphoned into it a Batch at a time during a fitting pass, and partial
// Accumulators over disjoint portions of a dataset may be merged. Merging must be
// exact and associative, so that the result does not depend upon how the data
// happened to be divided into Batches.
type Accumulator interface {
	Accumulate(values Column) error            // Accumulate adds a Batch's values to this Accumulator
	Merge(o Accumulator) error                 // Merge merges another Accumulator into this one
	Clone() Accumulator                        // Clone returns a deep copy of this Accumulator
	ToBytes() ([]byte, error)                  // ToBytes serializes this Accumulator
	FromBytes(buf []byte) (Accumulator, error) // FromBytes produce a new Accumulator from serialized data
}

// A Stat is a pluggable definition of a streaming statistic. It is immutable;
// all of its state lives within the Accumulators it initializes.
type Stat interface {
	ID() string              // ID returns the type tag of this Stat, used to match persisted and fitted state
	Initialize() Accumulator // Initialize produces a fresh, empty Accumulator
}
