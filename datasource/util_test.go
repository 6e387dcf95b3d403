package datasource_test

import (
	"fmt"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/datasource/memory"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

func createTestBatch(t *testing.T, ages ...float64) tabular.Batch {
	s, err := schema.CreateSchemaFromClasses(nil, []string{"age"}, nil)
	require.Nil(t, err)
	b, err := batch.Create(s, map[string]tabular.Column{"age": tabular.Float64Column(ages)})
	require.Nil(t, err)
	return b
}

func memoryLoader(batches []tabular.Batch, ended *int) datasource.Loader {
	return func() (tabular.BatchIterator, func() error, error) {
		iter, err := memory.CreateDataset(batches...).Batches()
		return iter, func() error {
			*ended++
			return nil
		}, err
	}
}

func TestChainLoaders(t *testing.T) {
	ended := 0
	iter := datasource.ChainLoaders(
		memoryLoader([]tabular.Batch{createTestBatch(t, 1, 2), createTestBatch(t)}, &ended),
		memoryLoader(nil, &ended),
		memoryLoader([]tabular.Batch{createTestBatch(t, 3)}, &ended),
	)
	var numRows []int
	for iter.HasNextBatch() {
		b, err := iter.NextBatch()
		require.Nil(t, err)
		numRows = append(numRows, b.NumRows())
	}
	require.Equal(t, []int{2, 1}, numRows)
	require.Equal(t, 3, ended)
	_, err := iter.NextBatch()
	require.ErrorAs(t, err, &errors.NoMoreBatchesError{})
}

func TestChainLoadersFailure(t *testing.T) {
	ended := 0
	iter := datasource.ChainLoaders(
		memoryLoader([]tabular.Batch{createTestBatch(t, 1)}, &ended),
		func() (tabular.BatchIterator, func() error, error) {
			return nil, nil, fmt.Errorf("unavailable")
		},
		memoryLoader([]tabular.Batch{createTestBatch(t, 2)}, &ended),
	)
	require.True(t, iter.HasNextBatch())
	_, err := iter.NextBatch()
	require.Nil(t, err)
	require.True(t, iter.HasNextBatch())
	_, err = iter.NextBatch()
	require.EqualError(t, err, "unavailable")
	require.False(t, iter.HasNextBatch())
	require.Equal(t, 1, ended)
}

func TestChainLoadersClose(t *testing.T) {
	ended := 0
	iter := datasource.ChainLoaders(
		memoryLoader([]tabular.Batch{createTestBatch(t, 1), createTestBatch(t, 2)}, &ended),
		memoryLoader([]tabular.Batch{createTestBatch(t, 3)}, &ended),
	)
	require.True(t, iter.HasNextBatch())
	_, err := iter.NextBatch()
	require.Nil(t, err)
	require.Nil(t, tabular.CloseBatches(iter))
	require.Equal(t, 1, ended)
	require.False(t, iter.HasNextBatch())
	require.Nil(t, tabular.CloseBatches(iter))
	require.Equal(t, 1, ended)
}
