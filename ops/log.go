package ops

import (
	"math"

	"github.com/go-sif/tabular"
)

// LogOp replaces continuous values with their natural logarithm
type LogOp struct {
	Base
}

// Log creates a LogOp, which acts on continuous columns in-place unless configured otherwise
func Log(opts ...Option) LogOp {
	return LogOp{Base: newBase("log", tabular.Continuous, opts)}
}

// StatsRequired returns nil, as LogOp requires no statistics
func (o LogOp) StatsRequired() []tabular.Stat {
	return nil
}

// Transform computes the natural logarithm of each value
func (o LogOp) Transform(column string, values tabular.Column, accs []tabular.Accumulator) (tabular.Column, error) {
	vals, err := tabular.AsFloat64s(column, values)
	if err != nil {
		return nil, err
	}
	result := make(tabular.Float64Column, len(vals))
	for i, v := range vals {
		result[i] = math.Log(v)
	}
	return result, nil
}
