package jsonl

import (
	"bufio"
	"io"

	"github.com/go-sif/tabular"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	BatchSize     int // The maximum number of rows per Batch. Defaults to 128.
	HeaderLines   int // The number of lines to ignore from the beginning of each file. Defaults to 0.
	MaxBufferSize int // Maximum size in bytes of the buffer used to read lines from the file
}

// Parser produces Batches from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf.BatchSize == 0 {
		conf.BatchSize = 128
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// BatchSize returns the maximum size in rows of Batches produced by this Parser
func (p *Parser) BatchSize() int {
	return p.conf.BatchSize
}

// Parse parses JSONL data to produce Batches
func (p *Parser) Parse(r io.Reader, schema tabular.Schema) (tabular.BatchIterator, error) {
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return &jsonlBatchIterator{
		parser:  p,
		scanner: scanner,
		hasNext: true,
		schema:  schema,
	}, nil
}
