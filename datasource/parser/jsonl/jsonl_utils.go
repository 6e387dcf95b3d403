package jsonl

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
	"github.com/tidwall/gjson"
)

// ParseJSONRow appends one row to a Builder, locating each column's value by treating its name as a gjson path
func ParseJSONRow(builder *batch.Builder, row gjson.Result) error {
	names := builder.ColumnNames()
	values := gjson.GetMany(row.Raw, names...)
	for i, val := range values {
		if !val.Exists() || val.Type == gjson.Null {
			builder.SetNil(i)
			continue
		}
		switch builder.ColumnType(i) {
		case tabular.Float64ColumnType:
			var fval float64
			switch val.Type {
			case gjson.Number:
				fval = val.Num
			case gjson.True:
				fval = 1
			case gjson.False:
				fval = 0
			default:
				return fmt.Errorf("Column %s was not a number. Was: %s", names[i], val.Raw)
			}
			if err := builder.SetFloat64(i, fval); err != nil {
				return err
			}
		case tabular.StringColumnType:
			if val.IsObject() || val.IsArray() {
				return fmt.Errorf("Column %s was not a scalar. Was: %s", names[i], val.Raw)
			}
			if err := builder.SetString(i, val.String()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("JSONL parsing does not support column type %s", builder.ColumnType(i))
		}
	}
	return builder.EndRow()
}
