package tabular

import (
	"fmt"
	"strings"
)

type selectorKind int

const (
	defaultSelection selectorKind = iota
	explicitSelection
	predicateSelection
)

// ColumnSelector describes which columns an Op acts upon: an explicit list of
// names, a predicate over column names, or (by default) every column of the
// Op's VariableClass at the point where the Op is applied
type ColumnSelector struct {
	kind        selectorKind
	names       []string
	predicate   func(name string) bool
	description string
}

// SelectDefault selects every column of an Op's class
func SelectDefault() ColumnSelector {
	return ColumnSelector{kind: defaultSelection}
}

// SelectColumns selects an explicit list of columns, which must be present wherever the Op is composed
func SelectColumns(names ...string) ColumnSelector {
	return ColumnSelector{kind: explicitSelection, names: append([]string(nil), names...)}
}

// SelectWhere selects the columns of an Op's class for which fn returns true. The
// description stands in for fn wherever a Workflow is described or persisted.
func SelectWhere(description string, fn func(name string) bool) ColumnSelector {
	return ColumnSelector{kind: predicateSelection, predicate: fn, description: description}
}

// IsDefault returns true iff this selector targets the Op's whole class
func (s ColumnSelector) IsDefault() bool { return s.kind == defaultSelection }

// IsExplicit returns true iff this selector names its columns explicitly
func (s ColumnSelector) IsExplicit() bool { return s.kind == explicitSelection }

// IsPredicate returns true iff this selector filters columns with a predicate
func (s ColumnSelector) IsPredicate() bool { return s.kind == predicateSelection }

// Names returns the explicitly selected columns, if any
func (s ColumnSelector) Names() []string {
	return append([]string(nil), s.names...)
}

// Matches returns true iff the named column would be selected from amongst the candidates of an Op
func (s ColumnSelector) Matches(name string) bool {
	switch s.kind {
	case explicitSelection:
		for _, n := range s.names {
			if n == name {
				return true
			}
		}
		return false
	case predicateSelection:
		return s.predicate(name)
	default:
		return true
	}
}

// String produces a description of this selector which contains no executable code
func (s ColumnSelector) String() string {
	switch s.kind {
	case explicitSelection:
		return fmt.Sprintf("columns(%s)", strings.Join(s.names, ","))
	case predicateSelection:
		return fmt.Sprintf("where(%s)", s.description)
	default:
		return "default"
	}
}
