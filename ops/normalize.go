package ops

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/stats"
)

// NormalizeOp centers continuous values on their fitted mean and scales them by
// their fitted standard deviation. Columns without variance are only centered.
type NormalizeOp struct {
	Base
}

// Normalize creates a NormalizeOp, which acts on continuous columns in-place unless configured otherwise
func Normalize(opts ...Option) NormalizeOp {
	return NormalizeOp{Base: newBase("normalize", tabular.Continuous, opts)}
}

// StatsRequired returns the Moments stat
func (o NormalizeOp) StatsRequired() []tabular.Stat {
	return []tabular.Stat{stats.Moments()}
}

// Transform computes (x - mean) / std for each value
func (o NormalizeOp) Transform(column string, values tabular.Column, accs []tabular.Accumulator) (tabular.Column, error) {
	if len(accs) != 1 {
		return nil, fmt.Errorf("Normalize requires 1 accumulator, got %d", len(accs))
	}
	moments, ok := accs[0].(*stats.MomentsAccumulator)
	if !ok {
		return nil, fmt.Errorf("Normalize requires a Moments accumulator for column %s", column)
	}
	vals, err := tabular.AsFloat64s(column, values)
	if err != nil {
		return nil, err
	}
	mean := moments.GetMean()
	std := moments.GetStd()
	if std == 0 {
		std = 1
	}
	result := make(tabular.Float64Column, len(vals))
	for i, v := range vals {
		result[i] = (v - mean) / std
	}
	return result, nil
}
