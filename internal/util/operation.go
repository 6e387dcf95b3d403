package util

import (
	"fmt"

	"github.com/go-sif/tabular"
)

// SafeTransform invokes an Op's Transform such that panics are recovered and nice error messages are constructed
func SafeTransform(op tabular.Op, column string, values tabular.Column, accs []tabular.Accumulator) (result tabular.Column, err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("Transform Panic in op %s: %w\nColumn: %s\n%s", op.ID(), anErr, column, GetTrace())
			} else {
				err = fmt.Errorf("Transform Panic in op %s: %v\nColumn: %s\n%s", op.ID(), r, column, GetTrace())
			}
			result = nil
		}
	}()
	result, err = op.Transform(column, values, accs)
	if err == nil && result != nil && result.Len() != values.Len() {
		err = fmt.Errorf("Transform Error in op %s: column %s produced %d values from %d", op.ID(), column, result.Len(), values.Len())
		result = nil
	}
	if err == nil && result == nil {
		err = fmt.Errorf("Transform Error in op %s: column %s produced no values", op.ID(), column)
	}
	return
}

// SafeAccumulate invokes an Accumulator's Accumulate such that panics are recovered and nice error messages are constructed
func SafeAccumulate(state *tabular.StatState, column string, values tabular.Column) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("Accumulate Panic in stat %s: %w\nColumn: %s\n%s", state.Stat().ID(), anErr, column, GetTrace())
			} else {
				err = fmt.Errorf("Accumulate Panic in stat %s: %v\nColumn: %s\n%s", state.Stat().ID(), r, column, GetTrace())
			}
		}
	}()
	return state.Accumulate(column, values)
}
