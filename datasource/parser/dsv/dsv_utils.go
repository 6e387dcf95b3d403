package dsv

import (
	"fmt"
	"strconv"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
)

// Parses a slice of strings into a row of a Batch, according to the Builder's column types
func scanRow(conf *ParserConf, builder *batch.Builder, rowStrings []string) error {
	names := builder.ColumnNames()
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			builder.SetNil(i)
			continue
		}
		// otherwise, parse type
		switch builder.ColumnType(i) {
		case tabular.Float64ColumnType:
			fval, err := strconv.ParseFloat(colVal, 64)
			if err != nil {
				return fmt.Errorf("Column %s could not be parsed as a number. Was: %#v", names[i], colVal)
			}
			if err := builder.SetFloat64(i, fval); err != nil {
				return err
			}
		case tabular.StringColumnType:
			if err := builder.SetString(i, colVal); err != nil {
				return err
			}
		default:
			return fmt.Errorf("DSV parsing does not support column type %s", builder.ColumnType(i))
		}
	}
	return builder.EndRow()
}
