package tabular

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about the most recent fitting pass
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the pass
	GetStartTime() time.Time
	// GetRuntime returns the running time of the pass
	GetRuntime() time.Duration
	// GetNumBatchesProcessed returns the number of Batches which have been processed so far
	GetNumBatchesProcessed() int64
	// GetNumRowsProcessed returns the number of rows which have been processed so far
	GetNumRowsProcessed() int64
	// GetCurrentBatchProcessingTime returns a rolling average of batch processing time
	GetCurrentBatchProcessingTime() time.Duration
}
