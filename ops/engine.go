package ops

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/internal/util"
)

// SelectColumns resolves an Op's input columns against a Schema. Candidates are the
// columns of the Op's class (every column, if the class is tabular.All).
func SelectColumns(op tabular.Op, schema tabular.Schema) ([]string, error) {
	sel := op.Selector()
	switch {
	case sel.IsExplicit():
		var missing, wrongClass, duplicated []string
		seen := make(map[string]bool, len(sel.Names()))
		for _, name := range sel.Names() {
			if seen[name] {
				duplicated = append(duplicated, name)
				continue
			}
			seen[name] = true
			class, err := schema.ClassOf(name)
			if err != nil {
				missing = append(missing, name)
			} else if !op.Class().Includes(class) {
				wrongClass = append(wrongClass, name)
			}
		}
		if len(duplicated) > 0 {
			return nil, errors.SchemaError{Op: op.ID(), Columns: duplicated, Reason: "columns are selected more than once"}
		}
		if len(missing) > 0 {
			return nil, errors.SchemaError{Op: op.ID(), Columns: missing, Reason: "selected columns are not present"}
		}
		if len(wrongClass) > 0 {
			return nil, errors.SchemaError{
				Op:      op.ID(),
				Columns: wrongClass,
				Reason:  fmt.Sprintf("selected columns are not of class %s", op.Class()),
			}
		}
		return sel.Names(), nil
	case sel.IsPredicate():
		candidates := schema.ColumnsOfClass(op.Class())
		selected := make([]string, 0, len(candidates))
		for _, name := range candidates {
			if sel.Matches(name) {
				selected = append(selected, name)
			}
		}
		if len(selected) == 0 {
			return nil, errors.SchemaError{
				Op:      op.ID(),
				Columns: candidates,
				Reason:  fmt.Sprintf("selector %s matches none of the columns", sel),
			}
		}
		return selected, nil
	default:
		return schema.ColumnsOfClass(op.Class()), nil
	}
}

// OutputName maps an input column to the name of the column the Op writes its result to
func OutputName(op tabular.Op, column string) string {
	if op.Replace() {
		return column
	}
	return op.Naming().Name(column, op.ID())
}

// OutputColumns maps a list of column names to the list which exists after the Op has been
// applied to the columns it selects from amongst them. Ops which create new columns produce
// the inputs followed by the new names, in input order.
func OutputColumns(op tabular.Op, columns []string) []string {
	result := append([]string(nil), columns...)
	if op.Replace() {
		return result
	}
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	sel := op.Selector()
	for _, c := range columns {
		if !sel.Matches(c) {
			continue
		}
		name := OutputName(op, c)
		if !present[name] {
			present[name] = true
			result = append(result, name)
		}
	}
	return result
}

// DeriveSchema applies an Op symbolically to a Schema, returning the resulting Schema
// and the selected input columns. New columns inherit the class of their source column.
// The input Schema is not modified.
func DeriveSchema(op tabular.Op, schema tabular.Schema) (tabular.Schema, []string, error) {
	selected, err := SelectColumns(op, schema)
	if err != nil {
		return nil, nil, err
	}
	result := schema.Clone()
	if op.Replace() {
		return result, selected, nil
	}
	for _, col := range selected {
		class, err := result.ClassOf(col)
		if err != nil {
			return nil, nil, err
		}
		name := OutputName(op, col)
		if result.HasColumn(name) {
			return nil, nil, errors.NameCollisionError{Op: op.ID(), Column: name}
		}
		if _, err := result.CreateColumn(name, class); err != nil {
			return nil, nil, err
		}
	}
	return result, selected, nil
}

// ResolveStats finds the fitted Accumulators an Op requires for each of the given columns.
// The result holds one slice per column, ordered as the Op's StatsRequired.
func ResolveStats(op tabular.Op, provider tabular.StatsProvider, columns []string) ([][]tabular.Accumulator, error) {
	required := op.StatsRequired()
	result := make([][]tabular.Accumulator, len(columns))
	if len(required) == 0 {
		return result, nil
	}
	if provider == nil {
		return nil, errors.StatsMissingError{Op: op.ID(), Reason: "no stats context was provided"}
	}
	states, ok := provider.StatesFor(op.ID())
	if !ok {
		return nil, errors.StatsMissingError{Op: op.ID(), Reason: "stats context has no statistics for this op"}
	}
	if len(states) != len(required) {
		return nil, errors.StatsMissingError{
			Op:     op.ID(),
			Reason: fmt.Sprintf("expected %d fitted stats, found %d", len(required), len(states)),
		}
	}
	for i, stat := range required {
		if states[i].Stat().ID() != stat.ID() {
			return nil, errors.StatsMissingError{
				Op:     op.ID(),
				Reason: fmt.Sprintf("expected stat %s at position %d, found %s", stat.ID(), i, states[i].Stat().ID()),
			}
		}
	}
	for ci, col := range columns {
		accs := make([]tabular.Accumulator, len(states))
		for si, state := range states {
			acc, ok := state.Get(col)
			if !ok {
				return nil, errors.StatsMissingError{
					Op:     op.ID(),
					Reason: fmt.Sprintf("stat %s was not fitted on column %s", state.Stat().ID(), col),
				}
			}
			accs[si] = acc
		}
		result[ci] = accs
	}
	return result, nil
}

// ApplyColumns applies an Op to the given columns of a Batch, in-place. Every output is
// computed before any is written, so the Batch is untouched if the Op fails.
func ApplyColumns(op tabular.Op, b tabular.Batch, columns []string, provider tabular.StatsProvider) error {
	accs, err := ResolveStats(op, provider, columns)
	if err != nil {
		return err
	}
	classes := make([]tabular.VariableClass, len(columns))
	outputs := make([]tabular.Column, len(columns))
	for i, col := range columns {
		classes[i], err = b.Schema().ClassOf(col)
		if err != nil {
			return errors.SchemaError{Op: op.ID(), Columns: []string{col}, Reason: "selected columns are not present in batch"}
		}
		if !op.Replace() && b.Schema().HasColumn(OutputName(op, col)) {
			return errors.NameCollisionError{Op: op.ID(), Column: OutputName(op, col)}
		}
		values, err := b.GetColumn(col)
		if err != nil {
			return err
		}
		outputs[i], err = util.SafeTransform(op, col, values, accs[i])
		if err != nil {
			return err
		}
	}
	for i, col := range columns {
		if err := b.SetColumn(OutputName(op, col), classes[i], outputs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Apply resolves an Op's columns against a Batch's Schema, and applies it to them in-place
func Apply(op tabular.Op, b tabular.Batch, provider tabular.StatsProvider) error {
	columns, err := SelectColumns(op, b.Schema())
	if err != nil {
		return err
	}
	return ApplyColumns(op, b, columns, provider)
}
