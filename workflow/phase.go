package workflow

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/hashicorp/go-multierror"
)

// A Phase is a named group of Ops which act on the columns of one VariableClass.
// Phases which do not name explicit columns can be reused across Workflows.
type Phase struct {
	name  string
	class tabular.VariableClass
	ops   []tabular.Op
}

// boundOp restricts a class-generic Op to the class of its Phase
type boundOp struct {
	tabular.Op
	class tabular.VariableClass
}

func (o boundOp) Class() tabular.VariableClass {
	return o.class
}

// NewPhase creates a Phase. Every op must act on the Phase's class, or be class-generic
// (tabular.All), in which case it is restricted to the Phase's class.
func NewPhase(name string, class tabular.VariableClass, opsToApply ...tabular.Op) (*Phase, error) {
	if name == "" {
		return nil, fmt.Errorf("Phase name must not be empty")
	}
	if !class.IsColumnClass() {
		return nil, fmt.Errorf("Phase %s must act on a column class, not %s", name, class)
	}
	p := &Phase{name: name, class: class, ops: make([]tabular.Op, 0, len(opsToApply))}
	for _, op := range opsToApply {
		switch op.Class() {
		case class:
			p.ops = append(p.ops, op)
		case tabular.All:
			p.ops = append(p.ops, boundOp{Op: op, class: class})
		default:
			return nil, fmt.Errorf("Op %s acts on %s columns, but phase %s acts on %s columns", op.ID(), op.Class(), name, class)
		}
	}
	return p, nil
}

// Name returns the name of this Phase
func (p *Phase) Name() string {
	return p.name
}

// Class returns the VariableClass this Phase acts on
func (p *Phase) Class() tabular.VariableClass {
	return p.class
}

// Ops returns the Ops of this Phase, in order
func (p *Phase) Ops() []tabular.Op {
	return append([]tabular.Op(nil), p.ops...)
}

// Apply composes this Phase onto a Workflow, validating every Op in sequence against the
// evolving Schema. All failures are reported together, and no Workflow is produced.
func (p *Phase) Apply(w *Workflow) (*Workflow, error) {
	var result *multierror.Error
	current := w
	for _, op := range p.ops {
		next, err := current.withStep(op, p.name)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("phase %s: %w", p.name, err))
			continue
		}
		current = next
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return current, nil
}

func unwrapOp(op tabular.Op) tabular.Op {
	if b, ok := op.(boundOp); ok {
		return b.Op
	}
	return op
}
