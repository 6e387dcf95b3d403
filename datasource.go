package tabular

import "io"

// BatchIterator is an iterator over the Batches of a Dataset
type BatchIterator interface {
	HasNextBatch() bool        // HasNextBatch returns true iff there is another Batch remaining
	NextBatch() (Batch, error) // NextBatch returns the next Batch
}

// CloseBatches releases the resources held by a BatchIterator which is abandoned
// before it is exhausted. Iterators which hold resources implement io.Closer; for any
// other iterator this is a no-op.
func CloseBatches(iter BatchIterator) error {
	if c, ok := iter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Dataset is a finite, restartable sequence of Batches. Each call to Batches()
// starts again from the first Batch. A Dataset never assumes more than one
// Batch is held in memory at a time.
type Dataset interface {
	Batches() (BatchIterator, error)
}

// DataSourceParser is a description of how to turn a stream of raw data into Batches
// respecting a Schema
type DataSourceParser interface {
	BatchSize() int                                          // BatchSize returns the maximum number of rows per Batch produced by this parser
	Parse(r io.Reader, schema Schema) (BatchIterator, error) // Parse parses a stream of data into Batches
}
