package stats

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a fitting pass
type RunStatistics struct {
	lock                    sync.Mutex
	started                 bool
	finished                bool
	startTime               time.Time
	totalRuntime            time.Duration
	rowsProcessed           int64
	batchesProcessed        int64
	recentBatchRuntimes     []time.Duration // for rolling average of recent batch processing times
	recentBatchRuntimesHead int
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.recentBatchRuntimes = make([]time.Duration, statisticRollingWindows)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// EndBatch tracks the end of the processing of a Batch which began at start
func (rs *RunStatistics) EndBatch(start time.Time, numRows int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if len(rs.recentBatchRuntimes) == 0 {
		rs.recentBatchRuntimes = make([]time.Duration, statisticRollingWindows)
	}
	rs.recentBatchRuntimes[rs.recentBatchRuntimesHead] = time.Since(start)
	rs.recentBatchRuntimesHead = (rs.recentBatchRuntimesHead + 1) % len(rs.recentBatchRuntimes)
	rs.rowsProcessed += int64(numRows)
	rs.batchesProcessed++
}

// GetStartTime returns the start time of the pass
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the pass
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	if !rs.started {
		return 0
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of rows which have been processed so far
func (rs *RunStatistics) GetNumRowsProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsProcessed
}

// GetNumBatchesProcessed returns the number of Batches which have been processed so far
func (rs *RunStatistics) GetNumBatchesProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.batchesProcessed
}

// GetCurrentBatchProcessingTime returns a rolling average of batch processing time
func (rs *RunStatistics) GetCurrentBatchProcessingTime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	var total time.Duration
	for _, d := range rs.recentBatchRuntimes {
		total += d
	}
	return total / statisticRollingWindows
}
