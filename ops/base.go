package ops

import (
	"github.com/go-sif/tabular"
)

// Base holds the configuration shared by all built-in Ops, and
// implements every method of tabular.Op except StatsRequired and Transform
type Base struct {
	id       string
	class    tabular.VariableClass
	selector tabular.ColumnSelector
	replace  bool
	naming   tabular.ColumnNamer
}

// Option configures a built-in Op
type Option func(*Base)

func newBase(defaultID string, class tabular.VariableClass, opts []Option) Base {
	b := Base{
		id:       defaultID,
		class:    class,
		selector: tabular.SelectDefault(),
		replace:  true,
		naming:   tabular.DefaultNaming(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Columns restricts an Op to an explicit list of columns
func Columns(names ...string) Option {
	return func(b *Base) {
		b.selector = tabular.SelectColumns(names...)
	}
}

// Where restricts an Op to the columns of its class for which fn returns true
func Where(description string, fn func(name string) bool) Option {
	return func(b *Base) {
		b.selector = tabular.SelectWhere(description, fn)
	}
}

// Named gives an Op an explicit identity, which also serves as the suffix
// of the columns it creates when it does not replace its inputs
func Named(name string) Option {
	return func(b *Base) {
		b.id = name
	}
}

// NameFunc names the columns an Op creates with fn, and implies Append
func NameFunc(description string, fn func(column string) string) Option {
	return func(b *Base) {
		b.naming = tabular.FuncNaming(description, fn)
		b.replace = false
	}
}

// Append makes an Op create new columns rather than transforming its inputs in-place
func Append() Option {
	return func(b *Base) {
		b.replace = false
	}
}

// InClass changes the VariableClass whose columns an Op targets by default
func InClass(class tabular.VariableClass) Option {
	return func(b *Base) {
		b.class = class
	}
}

// ID returns the explicit name of this Op, or the canonical lowercase form of its type name
func (b Base) ID() string {
	return b.id
}

// Class returns the class of the columns this Op targets by default
func (b Base) Class() tabular.VariableClass {
	return b.class
}

// Selector returns the rule which selects this Op's input columns
func (b Base) Selector() tabular.ColumnSelector {
	return b.selector
}

// Replace returns true iff this Op transforms its input columns in-place
func (b Base) Replace() bool {
	return b.replace
}

// Naming returns the rule which names new columns, if Replace() is false
func (b Base) Naming() tabular.ColumnNamer {
	return b.naming
}
