package ops

import (
	"math"

	"github.com/go-sif/tabular"
)

// FillMissingOp replaces missing (NaN) continuous values with a constant
type FillMissingOp struct {
	Base
	value float64
}

// FillMissing creates a FillMissingOp, which acts on continuous columns in-place unless configured otherwise
func FillMissing(value float64, opts ...Option) FillMissingOp {
	return FillMissingOp{Base: newBase("fill_missing", tabular.Continuous, opts), value: value}
}

// Value returns the constant which replaces missing values
func (o FillMissingOp) Value() float64 {
	return o.value
}

// StatsRequired returns nil, as FillMissingOp requires no statistics
func (o FillMissingOp) StatsRequired() []tabular.Stat {
	return nil
}

// Transform replaces each NaN with the configured constant
func (o FillMissingOp) Transform(column string, values tabular.Column, accs []tabular.Accumulator) (tabular.Column, error) {
	vals, err := tabular.AsFloat64s(column, values)
	if err != nil {
		return nil, err
	}
	result := make(tabular.Float64Column, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			result[i] = o.value
		} else {
			result[i] = v
		}
	}
	return result, nil
}
