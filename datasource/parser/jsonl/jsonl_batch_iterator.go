package jsonl

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
	"github.com/go-sif/tabular/errors"
	"github.com/tidwall/gjson"
)

type jsonlBatchIterator struct {
	parser  *Parser
	scanner *bufio.Scanner
	hasNext bool
	line    int
	schema  tabular.Schema
	lock    sync.Mutex
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch
func (jsonli *jsonlBatchIterator) HasNextBatch() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

// NextBatch returns the next Batch if one is available, or an error. The final Batch may be empty.
func (jsonli *jsonlBatchIterator) NextBatch() (tabular.Batch, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, errors.NoMoreBatchesError{}
	}
	builder := batch.CreateBuilder(jsonli.schema, jsonli.parser.BatchSize())
	// parse lines
	for !builder.IsFull() {
		if !jsonli.scanner.Scan() {
			jsonli.hasNext = false
			if err := jsonli.scanner.Err(); err != nil {
				return nil, err
			}
			break
		}
		jsonli.line++
		rowString := jsonli.scanner.Text()
		if len(strings.TrimSpace(rowString)) == 0 {
			continue
		}
		if !gjson.Valid(rowString) {
			jsonli.hasNext = false
			return nil, fmt.Errorf("Line %d is not valid JSON", jsonli.line)
		}
		err := ParseJSONRow(builder, gjson.Parse(rowString))
		if err != nil {
			jsonli.hasNext = false
			return nil, fmt.Errorf("Unable to parse line %d: %w", jsonli.line, err)
		}
	}
	return builder.Build()
}
