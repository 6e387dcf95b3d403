// Package workflow composes Ops into immutable Workflows, derives their output
// Schemas symbolically, and fits the statistics they require with a StatsContext.
package workflow

import (
	"fmt"
	"sort"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/ops"
	"github.com/go-sif/tabular/schema"
)

type step struct {
	op       tabular.Op
	phase    string
	selected []string       // input columns, resolved at composition
	schema   tabular.Schema // derived Schema after this step
}

// A Workflow is an immutable, ordered composition of Ops over a set of
// categorical, continuous and label columns. Every composition method returns
// a new Workflow, leaving its receiver untouched.
type Workflow struct {
	input *tabularInput
	steps []step
}

type tabularInput struct {
	categorical []string
	continuous  []string
	label       []string
	schema      tabular.Schema
}

// New creates an empty Workflow over the given columns, which must be unique
func New(categorical []string, continuous []string, label []string) (*Workflow, error) {
	seen := make(map[string]bool)
	var dups []string
	for _, list := range [][]string{categorical, continuous, label} {
		for _, name := range list {
			if seen[name] {
				dups = append(dups, name)
			}
			seen[name] = true
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return nil, errors.SchemaError{Columns: dups, Reason: "column names must be unique across classes"}
	}
	s, err := schema.CreateSchemaFromClasses(categorical, continuous, label)
	if err != nil {
		return nil, err
	}
	return &Workflow{
		input: &tabularInput{
			categorical: append([]string(nil), categorical...),
			continuous:  append([]string(nil), continuous...),
			label:       append([]string(nil), label...),
			schema:      s,
		},
	}, nil
}

func (w *Workflow) current() tabular.Schema {
	if len(w.steps) == 0 {
		return w.input.schema
	}
	return w.steps[len(w.steps)-1].schema
}

func (w *Workflow) withStep(op tabular.Op, phase string) (*Workflow, error) {
	if len(op.StatsRequired()) > 0 {
		for _, st := range w.steps {
			if st.op.ID() == op.ID() && len(st.op.StatsRequired()) > 0 {
				return nil, errors.DuplicateOpError{Op: op.ID()}
			}
		}
	}
	derived, selected, err := ops.DeriveSchema(op, w.current())
	if err != nil {
		return nil, err
	}
	steps := make([]step, len(w.steps), len(w.steps)+1)
	copy(steps, w.steps)
	steps = append(steps, step{op: op, phase: phase, selected: selected, schema: derived})
	return &Workflow{input: w.input, steps: steps}, nil
}

// WithOp returns a new Workflow which applies op after every Op of this one.
// The op's column selection is validated against the current derived Schema.
func (w *Workflow) WithOp(op tabular.Op) (*Workflow, error) {
	return w.withStep(op, "")
}

// To composes several Ops in sequence, failing on the first Op which cannot be composed
func (w *Workflow) To(opsToApply ...tabular.Op) (*Workflow, error) {
	result := w
	for _, op := range opsToApply {
		next, err := result.WithOp(op)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}

// WithPhase returns a new Workflow which applies every Op of the Phase after every Op of this one
func (w *Workflow) WithPhase(p *Phase) (*Workflow, error) {
	return p.Apply(w)
}

// WithWorkflow returns a new Workflow which applies every Op of sub after every Op of this one.
// Column selections are re-derived against this Workflow's Schema.
func (w *Workflow) WithWorkflow(sub *Workflow) (*Workflow, error) {
	result := w
	for _, st := range sub.steps {
		next, err := result.withStep(st.op, st.phase)
		if err != nil {
			return nil, fmt.Errorf("Unable to compose sub-workflow: %w", err)
		}
		result = next
	}
	return result, nil
}

// Ops returns the Ops of this Workflow, in order
func (w *Workflow) Ops() []tabular.Op {
	result := make([]tabular.Op, len(w.steps))
	for i, st := range w.steps {
		result[i] = st.op
	}
	return result
}

// GetColumns returns the columns of a class after every Op has been applied
func (w *Workflow) GetColumns(class tabular.VariableClass) []string {
	return w.current().ColumnsOfClass(class)
}

// ColumnsAtPhase returns the columns of a class after the last Op of the named Phase has been applied
func (w *Workflow) ColumnsAtPhase(class tabular.VariableClass, phase string) ([]string, error) {
	for i := len(w.steps) - 1; i >= 0; i-- {
		if w.steps[i].phase == phase && phase != "" {
			return w.steps[i].schema.ColumnsOfClass(class), nil
		}
	}
	return nil, fmt.Errorf("Workflow has no phase named %q", phase)
}

// Columns returns the categorical, then continuous, then label columns after every Op has been applied
func (w *Workflow) Columns() []string {
	var result []string
	result = append(result, w.GetColumns(tabular.Categorical)...)
	result = append(result, w.GetColumns(tabular.Continuous)...)
	return append(result, w.GetColumns(tabular.Label)...)
}

// InputSchema returns the Schema this Workflow expects
func (w *Workflow) InputSchema() tabular.Schema {
	return w.input.schema.Clone()
}

// OutputSchema returns the Schema this Workflow produces
func (w *Workflow) OutputSchema() tabular.Schema {
	return w.current().Clone()
}

func (w *Workflow) checkStats(provider tabular.StatsProvider) error {
	for _, st := range w.steps {
		if len(st.op.StatsRequired()) == 0 {
			continue
		}
		if _, err := ops.ResolveStats(st.op, provider, st.selected); err != nil {
			return err
		}
	}
	return nil
}

// Apply transforms a Batch in-place by applying every Op in order, using the statistics
// supplied by provider. The Ops run against a copy of the Batch, which is written back
// only once every Op has succeeded; on error the Batch is left untouched.
func (w *Workflow) Apply(b tabular.Batch, provider tabular.StatsProvider) (tabular.Batch, error) {
	if err := w.checkStats(provider); err != nil {
		return nil, err
	}
	out := b.Clone()
	for _, st := range w.steps {
		if err := ops.ApplyColumns(st.op, out, st.selected, provider); err != nil {
			return nil, err
		}
	}
	err := out.Schema().ForEachColumn(func(name string, class tabular.VariableClass) error {
		col, err := out.GetColumn(name)
		if err != nil {
			return err
		}
		return b.SetColumn(name, class, col)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
