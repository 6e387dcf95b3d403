package workflow

import (
	"github.com/go-sif/tabular"
)

type mappedDataset struct {
	source   tabular.Dataset
	workflow *Workflow
	provider tabular.StatsProvider
}

type mappedIterator struct {
	source   tabular.BatchIterator
	workflow *Workflow
	provider tabular.StatsProvider
}

// Map produces a Dataset whose Batches are those of source, transformed by w using the
// statistics supplied by provider. Batches are transformed lazily, as they are read.
// Iterators abandoned early should be released with tabular.CloseBatches.
func Map(source tabular.Dataset, w *Workflow, provider tabular.StatsProvider) tabular.Dataset {
	return &mappedDataset{source: source, workflow: w, provider: provider}
}

// Batches verifies that every required statistic is available, then iterates over the source
func (d *mappedDataset) Batches() (tabular.BatchIterator, error) {
	if err := d.workflow.checkStats(d.provider); err != nil {
		return nil, err
	}
	iter, err := d.source.Batches()
	if err != nil {
		return nil, err
	}
	return &mappedIterator{source: iter, workflow: d.workflow, provider: d.provider}, nil
}

func (it *mappedIterator) HasNextBatch() bool {
	return it.source.HasNextBatch()
}

func (it *mappedIterator) NextBatch() (tabular.Batch, error) {
	b, err := it.source.NextBatch()
	if err != nil {
		return nil, err
	}
	return it.workflow.Apply(b, it.provider)
}

func (it *mappedIterator) Close() error {
	return tabular.CloseBatches(it.source)
}
