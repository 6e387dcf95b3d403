package tabular

import "fmt"

// StatsProvider supplies fitted StatStates to Ops, keyed by Op identity
type StatsProvider interface {
	StatesFor(opID string) ([]*StatState, bool)
}

// StatState holds the per-column Accumulators of one Stat on behalf of one Op.
// It is only mutated during a fitting pass, and is read-only afterwards.
type StatState struct {
	stat    Stat
	columns []string
	accs    map[string]Accumulator
}

// NewStatState allocates a fresh Accumulator for each column
func NewStatState(stat Stat, columns []string) *StatState {
	s := &StatState{
		stat:    stat,
		columns: append([]string(nil), columns...),
		accs:    make(map[string]Accumulator, len(columns)),
	}
	for _, col := range columns {
		s.accs[col] = stat.Initialize()
	}
	return s
}

// RestoreStatState assembles a StatState from previously fitted Accumulators, in column order
func RestoreStatState(stat Stat, columns []string, accs []Accumulator) (*StatState, error) {
	if len(columns) != len(accs) {
		return nil, fmt.Errorf("Stat %s has %d columns but %d accumulators", stat.ID(), len(columns), len(accs))
	}
	s := &StatState{
		stat:    stat,
		columns: append([]string(nil), columns...),
		accs:    make(map[string]Accumulator, len(columns)),
	}
	for i, col := range columns {
		s.accs[col] = accs[i]
	}
	return s, nil
}

// Stat returns the Stat this state was initialized from
func (s *StatState) Stat() Stat {
	return s.stat
}

// Columns returns the columns tracked by this StatState, in order
func (s *StatState) Columns() []string {
	return append([]string(nil), s.columns...)
}

// HasColumn returns true iff this StatState tracks the given column
func (s *StatState) HasColumn(column string) bool {
	_, ok := s.accs[column]
	return ok
}

// Get returns the Accumulator for a column
func (s *StatState) Get(column string) (Accumulator, bool) {
	acc, ok := s.accs[column]
	return acc, ok
}

// Accumulate adds a Batch's values for one column to its Accumulator
func (s *StatState) Accumulate(column string, values Column) error {
	acc, ok := s.accs[column]
	if !ok {
		return fmt.Errorf("Stat %s is not tracking column %s", s.stat.ID(), column)
	}
	return acc.Accumulate(values)
}

// Merge merges the Accumulators of another StatState for the same Stat and columns into this one
func (s *StatState) Merge(o *StatState) error {
	if s.stat.ID() != o.stat.ID() {
		return fmt.Errorf("Cannot merge state of stat %s into state of stat %s", o.stat.ID(), s.stat.ID())
	}
	for _, col := range s.columns {
		oacc, ok := o.accs[col]
		if !ok {
			return fmt.Errorf("Incoming state of stat %s is missing column %s", o.stat.ID(), col)
		}
		if err := s.accs[col].Merge(oacc); err != nil {
			return fmt.Errorf("Unable to merge stat %s for column %s: %w", s.stat.ID(), col, err)
		}
	}
	return nil
}

// Clone returns a deep copy of this StatState
func (s *StatState) Clone() *StatState {
	c := &StatState{
		stat:    s.stat,
		columns: append([]string(nil), s.columns...),
		accs:    make(map[string]Accumulator, len(s.accs)),
	}
	for col, acc := range s.accs {
		c.accs[col] = acc.Clone()
	}
	return c
}
