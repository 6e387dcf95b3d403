package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/tabular"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	BatchSize   int    // The maximum number of rows per Batch. Defaults to 128.
	HeaderLines int    // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Delimiter   rune   // The delimiter separating columns in the file. Defaults to ,
	Comment     rune   // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
}

// Parser produces Batches from DSV data. Fields are matched to Schema columns by position.
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.BatchSize == 0 {
		conf.BatchSize = 128
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// BatchSize returns the maximum size in rows of Batches produced by this Parser
func (p *Parser) BatchSize() int {
	return p.conf.BatchSize
}

// Parse parses DSV data to produce Batches
func (p *Parser) Parse(r io.Reader, schema tabular.Schema) (tabular.BatchIterator, error) {
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = schema.NumColumns()
	reader.ReuseRecord = true

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
	}

	return &dsvBatchIterator{
		parser:  p,
		reader:  reader,
		hasNext: true,
		schema:  schema,
	}, nil
}
