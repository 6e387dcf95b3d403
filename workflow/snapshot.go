package workflow

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/gofrs/uuid"
)

// StateSnapshot is the persistable form of a fitted StatsContext: the structure of
// its Workflow, and the serialized Accumulators of every Op which requires Stats
type StateSnapshot struct {
	Fingerprint uint64
	FitID       string
	Ops         []OpDescriptor
	States      []OpStateSnapshot
}

// OpStateSnapshot holds the fitted Stats of one Op, in the order of its StatsRequired
type OpStateSnapshot struct {
	OpID  string
	Stats []StatSnapshot
}

// StatSnapshot holds the serialized Accumulators of one Stat, one per column
type StatSnapshot struct {
	Tag     string
	Columns []string
	Values  [][]byte
}

// Snapshot serializes the committed state of this StatsContext
func (c *StatsContext) Snapshot() (*StateSnapshot, error) {
	c.lock.RLock()
	state := c.state
	fitID := c.fitID
	c.lock.RUnlock()
	if state == nil {
		return nil, fmt.Errorf("Stats context has not been fitted")
	}
	snap := &StateSnapshot{
		Fingerprint: c.workflow.Fingerprint(),
		FitID:       fitID.String(),
		Ops:         c.workflow.Describe(),
	}
	for _, st := range c.workflow.steps {
		states, ok := state[st.op.ID()]
		if !ok {
			continue
		}
		opSnap := OpStateSnapshot{OpID: st.op.ID()}
		for _, s := range states {
			statSnap := StatSnapshot{Tag: s.Stat().ID(), Columns: s.Columns()}
			for _, col := range statSnap.Columns {
				acc, _ := s.Get(col)
				buff, err := acc.ToBytes()
				if err != nil {
					return nil, fmt.Errorf("Unable to serialize stat %s of op %s for column %s: %w", s.Stat().ID(), st.op.ID(), col, err)
				}
				statSnap.Values = append(statSnap.Values, buff)
			}
			opSnap.Stats = append(opSnap.Stats, statSnap)
		}
		snap.States = append(snap.States, opSnap)
	}
	return snap, nil
}

// Restore reattaches a StateSnapshot to a freshly built Workflow, producing a fitted
// StatsContext. The Workflow must have the structure the snapshot was taken from.
func Restore(w *Workflow, snap *StateSnapshot, conf *ContextConf) (*StatsContext, error) {
	if snap == nil {
		return nil, errors.StateMismatchError{Reason: "no snapshot was provided"}
	}
	descriptors := w.Describe()
	if len(descriptors) != len(snap.Ops) {
		return nil, errors.StateMismatchError{Reason: fmt.Sprintf("snapshot describes %d ops, workflow has %d", len(snap.Ops), len(descriptors))}
	}
	for i, d := range descriptors {
		if d != snap.Ops[i] {
			return nil, errors.StateMismatchError{Op: d.ID, Reason: fmt.Sprintf("op %d is described as %+v in the snapshot", i, snap.Ops[i])}
		}
	}
	if w.Fingerprint() != snap.Fingerprint {
		return nil, errors.StateMismatchError{Reason: "workflow fingerprint differs from snapshot"}
	}
	snapStates := make(map[string]OpStateSnapshot, len(snap.States))
	for _, s := range snap.States {
		snapStates[s.OpID] = s
	}
	state := make(fitState)
	for _, st := range w.steps {
		required := st.op.StatsRequired()
		if len(required) == 0 {
			continue
		}
		id := st.op.ID()
		opSnap, ok := snapStates[id]
		if !ok {
			return nil, errors.StateMismatchError{Op: id, Reason: "snapshot has no state for this op"}
		}
		delete(snapStates, id)
		if len(opSnap.Stats) != len(required) {
			return nil, errors.StateMismatchError{Op: id, Reason: fmt.Sprintf("expected %d stats, found %d", len(required), len(opSnap.Stats))}
		}
		for i, stat := range required {
			restored, err := restoreStat(id, stat, st.selected, opSnap.Stats[i])
			if err != nil {
				return nil, err
			}
			state[id] = append(state[id], restored)
		}
	}
	for _, s := range snap.States {
		if _, ok := snapStates[s.OpID]; ok {
			return nil, errors.StateMismatchError{Op: s.OpID, Reason: "snapshot has state for an op which requires none"}
		}
	}
	fitID, err := uuid.FromString(snap.FitID)
	if err != nil {
		return nil, errors.StateMismatchError{Reason: fmt.Sprintf("invalid fit id: %s", err)}
	}
	c, err := NewStatsContext(w, conf)
	if err != nil {
		return nil, err
	}
	c.state = state
	c.fitID = fitID
	return c, nil
}

func restoreStat(opID string, stat tabular.Stat, columns []string, snap StatSnapshot) (*tabular.StatState, error) {
	if snap.Tag != stat.ID() {
		return nil, errors.StateMismatchError{Op: opID, Reason: fmt.Sprintf("expected stat %s, found %s", stat.ID(), snap.Tag)}
	}
	if len(snap.Columns) != len(columns) || len(snap.Values) != len(columns) {
		return nil, errors.StateMismatchError{Op: opID, Reason: fmt.Sprintf("stat %s has state for %d columns, expected %d", stat.ID(), len(snap.Columns), len(columns))}
	}
	accs := make([]tabular.Accumulator, len(columns))
	for i, col := range columns {
		if snap.Columns[i] != col {
			return nil, errors.StateMismatchError{Op: opID, Reason: fmt.Sprintf("stat %s has state for column %s, expected %s", stat.ID(), snap.Columns[i], col)}
		}
		acc, err := stat.Initialize().FromBytes(snap.Values[i])
		if err != nil {
			return nil, fmt.Errorf("Unable to deserialize stat %s of op %s for column %s: %w", stat.ID(), opID, col, err)
		}
		accs[i] = acc
	}
	return tabular.RestoreStatState(stat, columns, accs)
}
