// Package datasource contains helpers for the implementation of Datasets
package datasource

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// A Loader opens one division of a Dataset (a file, a buffer, a query result). onEnd,
// if non-nil, is called once the returned iterator is exhausted or fails.
type Loader func() (iter tabular.BatchIterator, onEnd func() error, err error)

type chainedIterator struct {
	loaders []Loader
	current tabular.BatchIterator
	onEnd   func() error
	next    tabular.Batch
	err     error
	done    bool
}

// ChainLoaders produces a BatchIterator over the Batches of each Loader in turn.
// Loaders are opened lazily, and empty Batches are skipped. The iterator implements
// io.Closer, so that a division may be released before it is exhausted.
func ChainLoaders(loaders ...Loader) tabular.BatchIterator {
	return &chainedIterator{loaders: loaders}
}

func (it *chainedIterator) endCurrent() {
	if it.onEnd != nil {
		if err := it.onEnd(); err != nil && it.err == nil {
			it.err = err
		}
	}
	it.current = nil
	it.onEnd = nil
}

func (it *chainedIterator) advance() {
	if it.next != nil || it.err != nil || it.done {
		return
	}
	for {
		if it.current == nil {
			if len(it.loaders) == 0 {
				it.done = true
				return
			}
			iter, onEnd, err := it.loaders[0]()
			it.loaders = it.loaders[1:]
			if err != nil {
				it.err = err
				return
			}
			it.current, it.onEnd = iter, onEnd
		}
		if !it.current.HasNextBatch() {
			it.endCurrent()
			if it.err != nil {
				return
			}
			continue
		}
		b, err := it.current.NextBatch()
		if err != nil {
			it.err = err
			it.endCurrent()
			return
		}
		if b.NumRows() > 0 {
			it.next = b
			return
		}
	}
}

// Close ends the division currently open, if any, and exhausts the iterator
func (it *chainedIterator) Close() error {
	it.loaders = nil
	it.next = nil
	it.err = nil
	it.done = true
	it.endCurrent()
	err := it.err
	it.err = nil
	return err
}

// HasNextBatch returns true iff there is another Batch, or an error, remaining
func (it *chainedIterator) HasNextBatch() bool {
	it.advance()
	return it.next != nil || it.err != nil
}

// NextBatch returns the next Batch. After an error is returned, the iterator is exhausted.
func (it *chainedIterator) NextBatch() (tabular.Batch, error) {
	it.advance()
	if it.err != nil {
		err := it.err
		it.err = nil
		it.done = true
		it.loaders = nil
		return nil, err
	}
	if it.next == nil {
		return nil, errors.NoMoreBatchesError{}
	}
	b := it.next
	it.next = nil
	return b, nil
}
