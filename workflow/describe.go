package workflow

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/tabular"
)

// OpDescriptor describes an Op of a Workflow without any executable code: predicate
// selectors and naming functions are represented by their descriptions
type OpDescriptor struct {
	ID       string
	Type     string
	Phase    string
	Class    string
	Selector string
	Replace  bool
	Naming   string
}

// Describe produces an OpDescriptor for each Op of this Workflow, in order
func (w *Workflow) Describe() []OpDescriptor {
	result := make([]OpDescriptor, len(w.steps))
	for i, st := range w.steps {
		result[i] = OpDescriptor{
			ID:       st.op.ID(),
			Type:     fmt.Sprintf("%T", unwrapOp(st.op)),
			Phase:    st.phase,
			Class:    string(st.op.Class()),
			Selector: st.op.Selector().String(),
			Replace:  st.op.Replace(),
			Naming:   st.op.Naming().String(),
		}
	}
	return result
}

// Fingerprint hashes the structure of this Workflow: its input Schema and the
// description of every Op. Workflows built the same way share a Fingerprint.
func (w *Workflow) Fingerprint() uint64 {
	h := xxhash.New()
	w.input.schema.ForEachColumn(func(name string, class tabular.VariableClass) error {
		fmt.Fprintf(h, "column|%s|%s\n", name, class)
		return nil
	})
	for _, d := range w.Describe() {
		fmt.Fprintf(h, "op|%s|%s|%s|%s|%s|%t|%s\n", d.ID, d.Type, d.Phase, d.Class, d.Selector, d.Replace, d.Naming)
	}
	return h.Sum64()
}
