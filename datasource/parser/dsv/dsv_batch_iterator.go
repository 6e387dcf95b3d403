package dsv

import (
	"encoding/csv"
	"io"
	"sync"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
	"github.com/go-sif/tabular/errors"
)

type dsvBatchIterator struct {
	parser  *Parser
	reader  *csv.Reader
	hasNext bool
	schema  tabular.Schema
	lock    sync.Mutex
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch
func (dsvi *dsvBatchIterator) HasNextBatch() bool {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.hasNext
}

// NextBatch returns the next Batch if one is available, or an error. The final Batch may be empty.
func (dsvi *dsvBatchIterator) NextBatch() (tabular.Batch, error) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		return nil, errors.NoMoreBatchesError{}
	}
	builder := batch.CreateBuilder(dsvi.schema, dsvi.parser.BatchSize())
	// parse lines
	for !builder.IsFull() {
		rowStrings, err := dsvi.reader.Read()
		if err == io.EOF {
			dsvi.hasNext = false
			break
		} else if err != nil {
			dsvi.hasNext = false
			return nil, err
		}
		err = scanRow(dsvi.parser.conf, builder, rowStrings)
		if err != nil {
			dsvi.hasNext = false
			return nil, err
		}
	}
	return builder.Build()
}
