package jsonl

import (
	"math"
	"strings"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource/memory"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

func TestJSONLDatasourceParser(t *testing.T) {
	s, err := schema.CreateSchemaFromClasses([]string{"name", "meta.last"}, []string{"meta.index"}, []string{"meta.active"})
	require.Nil(t, err)

	parser := CreateParser(&ParserConf{
		BatchSize: 128,
	})
	data := [][]byte{
		[]byte("{\"name\": \"Sean\", \"meta\": { \"index\": 1, \"last\": \"McIntyre\", \"active\": true}}\n{\"name\": \"Chris\", \"meta\": { \"index\": 3, \"last\": \"Dickson\", \"active\": false}}"),
		[]byte("{\"name\": \"Phil\", \"meta\": { \"index\": null, \"last\": \"Laliberté\"}}\n\n{\"name\": 4, \"meta\": { \"index\": 4.5, \"last\": \"Husain\", \"active\": true}}"),
	}
	iter, err := memory.CreateParsedDataset(data, parser, s).Batches()
	require.Nil(t, err)
	totalRows := 0
	var batches []tabular.Batch
	for iter.HasNextBatch() {
		b, err := iter.NextBatch()
		require.Nil(t, err)
		totalRows += b.NumRows()
		batches = append(batches, b)
	}
	require.Equal(t, 4, totalRows)
	require.Len(t, batches, 2)

	names, err := batches[1].GetColumn("name")
	require.Nil(t, err)
	require.Equal(t, tabular.StringColumn{"Phil", "4"}, names)
	index, err := batches[1].GetColumn("meta.index")
	require.Nil(t, err)
	require.True(t, math.IsNaN(index.(tabular.Float64Column)[0]))
	require.Equal(t, 4.5, index.(tabular.Float64Column)[1])
	active, err := batches[0].GetColumn("meta.active")
	require.Nil(t, err)
	require.Equal(t, tabular.Float64Column{1, 0}, active)
}

func TestJSONLParserRejectsInvalidRows(t *testing.T) {
	s, err := schema.CreateSchemaFromClasses(nil, []string{"x"}, nil)
	require.Nil(t, err)
	parser := CreateParser(&ParserConf{})

	iter, err := parser.Parse(strings.NewReader("{\"x\": \"one\"}\n"), s)
	require.Nil(t, err)
	_, err = iter.NextBatch()
	require.NotNil(t, err)
	require.False(t, iter.HasNextBatch())

	iter, err = parser.Parse(strings.NewReader("{\"x\": 1\n"), s)
	require.Nil(t, err)
	_, err = iter.NextBatch()
	require.NotNil(t, err)
}
