// Package memory provides Datasets backed by data held in memory
package memory

import (
	"bytes"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/errors"
)

// Dataset is a sequence of Batches held in memory. Each Batch handed out is a copy,
// so the Dataset may be read any number of times, even by code which transforms
// Batches in-place.
type Dataset struct {
	batches []tabular.Batch
}

// CreateDataset is a factory for in-memory Datasets
func CreateDataset(batches ...tabular.Batch) *Dataset {
	return &Dataset{batches: append([]tabular.Batch(nil), batches...)}
}

// NumBatches returns the number of Batches in this Dataset
func (d *Dataset) NumBatches() int {
	return len(d.batches)
}

// Batches starts a new iteration over this Dataset
func (d *Dataset) Batches() (tabular.BatchIterator, error) {
	return &batchIterator{batches: d.batches}, nil
}

type batchIterator struct {
	idx     int
	batches []tabular.Batch
}

func (it *batchIterator) HasNextBatch() bool {
	return it.idx < len(it.batches)
}

func (it *batchIterator) NextBatch() (tabular.Batch, error) {
	if it.idx >= len(it.batches) {
		return nil, errors.NoMoreBatchesError{}
	}
	b := it.batches[it.idx].Clone()
	it.idx++
	return b, nil
}

// ParsedDataset is a sequence of raw buffers held in memory, parsed into Batches as they are read
type ParsedDataset struct {
	data   [][]byte
	parser tabular.DataSourceParser
	schema tabular.Schema
}

// CreateParsedDataset is a factory for Datasets which parse raw data held in memory
func CreateParsedDataset(data [][]byte, parser tabular.DataSourceParser, schema tabular.Schema) *ParsedDataset {
	return &ParsedDataset{data: data, parser: parser, schema: schema}
}

// Batches starts a new iteration over this Dataset
func (d *ParsedDataset) Batches() (tabular.BatchIterator, error) {
	loaders := make([]datasource.Loader, len(d.data))
	for i, buff := range d.data {
		buff := buff
		loaders[i] = func() (tabular.BatchIterator, func() error, error) {
			iter, err := d.parser.Parse(bytes.NewReader(buff), d.schema)
			return iter, nil, err
		}
	}
	return datasource.ChainLoaders(loaders...), nil
}
