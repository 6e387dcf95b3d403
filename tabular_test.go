package tabular_test

import (
	"strings"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/stats"
	"github.com/stretchr/testify/require"
)

func TestColumnSelector(t *testing.T) {
	def := tabular.SelectDefault()
	require.True(t, def.IsDefault())
	require.True(t, def.Matches("anything"))
	require.Equal(t, "default", def.String())

	explicit := tabular.SelectColumns("a", "b")
	require.True(t, explicit.IsExplicit())
	require.True(t, explicit.Matches("b"))
	require.False(t, explicit.Matches("c"))
	require.Equal(t, []string{"a", "b"}, explicit.Names())
	require.Equal(t, "columns(a,b)", explicit.String())

	where := tabular.SelectWhere("prefix x", func(name string) bool { return strings.HasPrefix(name, "x") })
	require.True(t, where.IsPredicate())
	require.True(t, where.Matches("xy"))
	require.False(t, where.Matches("yx"))
	require.Equal(t, "where(prefix x)", where.String())
}

func TestColumnNamer(t *testing.T) {
	require.Equal(t, "age_log", tabular.DefaultNaming().Name("age", "log"))
	require.Equal(t, "default", tabular.DefaultNaming().String())
	upper := tabular.FuncNaming("upper", strings.ToUpper)
	require.Equal(t, "AGE", upper.Name("age", "log"))
	require.Equal(t, "func(upper)", upper.String())
}

func TestVariableClass(t *testing.T) {
	require.True(t, tabular.All.Includes(tabular.Label))
	require.True(t, tabular.Continuous.Includes(tabular.Continuous))
	require.False(t, tabular.Continuous.Includes(tabular.Categorical))
	require.False(t, tabular.All.IsColumnClass())
	require.True(t, tabular.Label.IsColumnClass())
}

func TestColumnCoercion(t *testing.T) {
	vals, err := tabular.AsFloat64s("n", tabular.Int64Column{1, 2})
	require.Nil(t, err)
	require.Equal(t, []float64{1, 2}, vals)
	_, err = tabular.AsFloat64s("s", tabular.StringColumn{"a"})
	require.ErrorAs(t, err, &errors.ColumnTypeError{})

	keys, err := tabular.AsKeys("n", tabular.Int64Column{7, -1})
	require.Nil(t, err)
	require.Equal(t, []string{"7", "-1"}, keys)
	_, err = tabular.AsKeys("f", tabular.Float64Column{1})
	require.ErrorAs(t, err, &errors.ColumnTypeError{})
}

func TestStatState(t *testing.T) {
	s := tabular.NewStatState(stats.Moments(), []string{"a", "b"})
	require.Equal(t, []string{"a", "b"}, s.Columns())
	require.True(t, s.HasColumn("a"))
	require.False(t, s.HasColumn("c"))
	require.Nil(t, s.Accumulate("a", tabular.Float64Column{1, 2, 3}))
	require.NotNil(t, s.Accumulate("c", tabular.Float64Column{1}))

	clone := s.Clone()
	require.Nil(t, clone.Accumulate("a", tabular.Float64Column{4}))
	acc, ok := s.Get("a")
	require.True(t, ok)
	require.EqualValues(t, 3, acc.(*stats.MomentsAccumulator).GetCount())

	require.Nil(t, s.Merge(clone))
	require.EqualValues(t, 7, acc.(*stats.MomentsAccumulator).GetCount())
	require.NotNil(t, s.Merge(tabular.NewStatState(stats.LabelEncoder(), []string{"a", "b"})))
	require.NotNil(t, s.Merge(tabular.NewStatState(stats.Moments(), []string{"a"})))

	_, err := tabular.RestoreStatState(stats.Moments(), []string{"a"}, nil)
	require.NotNil(t, err)
	restored, err := tabular.RestoreStatState(stats.Moments(), []string{"a"}, []tabular.Accumulator{acc})
	require.Nil(t, err)
	got, _ := restored.Get("a")
	require.Same(t, acc, got)
}
