package ops

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/stats"
)

// CategorifyOp replaces categorical values with the integer codes fitted by a LabelEncoder
type CategorifyOp struct {
	Base
}

// Categorify creates a CategorifyOp, which acts on categorical columns in-place unless configured otherwise
func Categorify(opts ...Option) CategorifyOp {
	return CategorifyOp{Base: newBase("categorify", tabular.Categorical, opts)}
}

// StatsRequired returns the LabelEncoder stat
func (o CategorifyOp) StatsRequired() []tabular.Stat {
	return []tabular.Stat{stats.LabelEncoder()}
}

// Transform looks up the code of each category, failing on categories which were not fitted
func (o CategorifyOp) Transform(column string, values tabular.Column, accs []tabular.Accumulator) (tabular.Column, error) {
	if len(accs) != 1 {
		return nil, fmt.Errorf("Categorify requires 1 accumulator, got %d", len(accs))
	}
	encoder, ok := accs[0].(*stats.LabelEncoderAccumulator)
	if !ok {
		return nil, fmt.Errorf("Categorify requires a LabelEncoder accumulator for column %s", column)
	}
	keys, err := tabular.AsKeys(column, values)
	if err != nil {
		return nil, err
	}
	result := make(tabular.Int64Column, len(keys))
	for i, k := range keys {
		code, ok := encoder.GetCode(k)
		if !ok {
			return nil, errors.UnseenCategoryError{Op: o.ID(), Column: column, Value: k}
		}
		result[i] = code
	}
	return result, nil
}
