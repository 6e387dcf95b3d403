package ops

import (
	"math"
	"strings"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/schema"
	"github.com/go-sif/tabular/stats"
	"github.com/stretchr/testify/require"
)

type mapProvider map[string][]*tabular.StatState

func (p mapProvider) StatesFor(opID string) ([]*tabular.StatState, bool) {
	states, ok := p[opID]
	return states, ok
}

func createTestSchema(t *testing.T) tabular.Schema {
	s, err := schema.CreateSchemaFromClasses([]string{"city"}, []string{"age", "income"}, []string{"clicked"})
	require.Nil(t, err)
	return s
}

func createTestBatch(t *testing.T) tabular.Batch {
	b, err := batch.Create(createTestSchema(t), map[string]tabular.Column{
		"city":    tabular.StringColumn{"paris", "oslo", "paris", "lima", "oslo"},
		"age":     tabular.Float64Column{1, 2, 3, 4, 5},
		"income":  tabular.Float64Column{10, 10, 10, 10, 10},
		"clicked": tabular.Float64Column{0, 1, 0, 1, 1},
	})
	require.Nil(t, err)
	return b
}

// fitOp accumulates every required stat of op over the columns it selects from b
func fitOp(t *testing.T, op tabular.Op, b tabular.Batch) mapProvider {
	columns, err := SelectColumns(op, b.Schema())
	require.Nil(t, err)
	var states []*tabular.StatState
	for _, stat := range op.StatsRequired() {
		state := tabular.NewStatState(stat, columns)
		for _, col := range columns {
			values, err := b.GetColumn(col)
			require.Nil(t, err)
			require.Nil(t, state.Accumulate(col, values))
		}
		states = append(states, state)
	}
	return mapProvider{op.ID(): states}
}

func TestSelectColumnsDefault(t *testing.T) {
	s := createTestSchema(t)
	cols, err := SelectColumns(Normalize(), s)
	require.Nil(t, err)
	require.Equal(t, []string{"age", "income"}, cols)
	cols, err = SelectColumns(FillMissing(0, InClass(tabular.All)), s)
	require.Nil(t, err)
	require.Equal(t, []string{"city", "age", "income", "clicked"}, cols)
	cols, err = SelectColumns(Log(InClass(tabular.Label)), s)
	require.Nil(t, err)
	require.Equal(t, []string{"clicked"}, cols)
}

func TestSelectColumnsExplicit(t *testing.T) {
	s := createTestSchema(t)
	cols, err := SelectColumns(Log(Columns("income")), s)
	require.Nil(t, err)
	require.Equal(t, []string{"income"}, cols)

	_, err = SelectColumns(Log(Columns("income", "height")), s)
	schemaErr := errors.SchemaError{}
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, []string{"height"}, schemaErr.Columns)
	require.Equal(t, "log", schemaErr.Op)

	_, err = SelectColumns(Log(Columns("city")), s)
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, []string{"city"}, schemaErr.Columns)
}

func TestSelectColumnsRejectsRepeatedColumns(t *testing.T) {
	s := createTestSchema(t)
	_, err := SelectColumns(Normalize(Columns("age", "income", "age")), s)
	schemaErr := errors.SchemaError{}
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, []string{"age"}, schemaErr.Columns)
	require.Equal(t, "normalize", schemaErr.Op)
}

func TestSelectColumnsPredicate(t *testing.T) {
	s := createTestSchema(t)
	prefixed := func(prefix string) func(string) bool {
		return func(name string) bool { return strings.HasPrefix(name, prefix) }
	}
	cols, err := SelectColumns(Log(Where("prefix a", prefixed("a"))), s)
	require.Nil(t, err)
	require.Equal(t, []string{"age"}, cols)

	// predicates only consider the columns of the op's class
	_, err = SelectColumns(Log(Where("prefix c", prefixed("c"))), s)
	require.ErrorAs(t, err, &errors.SchemaError{})
}

func TestOutputColumns(t *testing.T) {
	inputs := []string{"age", "income"}
	require.Equal(t, inputs, OutputColumns(Log(), inputs))
	require.Equal(t, []string{"age", "income", "age_log", "income_log"}, OutputColumns(Log(Append()), inputs))
	require.Equal(t, []string{"age", "income", "age_ln"}, OutputColumns(Log(Append(), Named("ln"), Columns("age")), inputs))
	upper := NameFunc("upper", strings.ToUpper)
	require.Equal(t, []string{"age", "income", "AGE", "INCOME"}, OutputColumns(Log(upper), inputs))
	require.Equal(t, "age", OutputName(Log(), "age"))
	require.Equal(t, "age_normalize", OutputName(Normalize(Append()), "age"))
}

func TestDeriveSchema(t *testing.T) {
	s := createTestSchema(t)
	derived, selected, err := DeriveSchema(Normalize(Append()), s)
	require.Nil(t, err)
	require.Equal(t, []string{"age", "income"}, selected)
	require.Equal(t, []string{"city", "age", "income", "clicked", "age_normalize", "income_normalize"}, derived.ColumnNames())
	class, err := derived.ClassOf("age_normalize")
	require.Nil(t, err)
	require.Equal(t, tabular.Continuous, class)
	// the input schema is untouched
	require.Equal(t, 4, s.NumColumns())

	derived, _, err = DeriveSchema(Log(), s)
	require.Nil(t, err)
	require.Nil(t, derived.Equals(s))
}

func TestDeriveSchemaRejectsCollisions(t *testing.T) {
	s := createTestSchema(t)
	_, _, err := DeriveSchema(Log(NameFunc("same", func(string) string { return "same" })), s)
	collision := errors.NameCollisionError{}
	require.ErrorAs(t, err, &collision)
	require.Equal(t, "same", collision.Column)

	_, _, err = DeriveSchema(Log(NameFunc("income", func(string) string { return "income" }), Columns("age")), s)
	require.ErrorAs(t, err, &collision)
}

func TestResolveStats(t *testing.T) {
	b := createTestBatch(t)
	op := Normalize()
	columns := []string{"age", "income"}

	_, err := ResolveStats(op, nil, columns)
	missing := errors.StatsMissingError{}
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "normalize", missing.Op)

	_, err = ResolveStats(op, mapProvider{}, columns)
	require.ErrorAs(t, err, &missing)

	wrongType := mapProvider{"normalize": {tabular.NewStatState(stats.LabelEncoder(), columns)}}
	_, err = ResolveStats(op, wrongType, columns)
	require.ErrorAs(t, err, &missing)

	tooMany := mapProvider{"normalize": {
		tabular.NewStatState(stats.Moments(), columns),
		tabular.NewStatState(stats.Moments(), columns),
	}}
	_, err = ResolveStats(op, tooMany, columns)
	require.ErrorAs(t, err, &missing)

	partial := mapProvider{"normalize": {tabular.NewStatState(stats.Moments(), []string{"age"})}}
	_, err = ResolveStats(op, partial, columns)
	require.ErrorAs(t, err, &missing)

	accs, err := ResolveStats(op, fitOp(t, op, b), columns)
	require.Nil(t, err)
	require.Len(t, accs, 2)
	require.Len(t, accs[1], 1)

	// ops without stats need no provider
	accs, err = ResolveStats(Log(), nil, columns)
	require.Nil(t, err)
	require.Len(t, accs, 2)
}

func TestApplyWithoutStatsLeavesBatchUntouched(t *testing.T) {
	b := createTestBatch(t)
	before := b.Clone()
	err := Apply(Normalize(), b, nil)
	require.ErrorAs(t, err, &errors.StatsMissingError{})
	require.Equal(t, before, b)
}

func TestApplyNormalize(t *testing.T) {
	b := createTestBatch(t)
	op := Normalize(Columns("age"))
	provider := fitOp(t, op, b)
	require.Nil(t, Apply(op, b, provider))
	col, err := b.GetColumn("age")
	require.Nil(t, err)
	expected := []float64{-2 / math.Sqrt2, -1 / math.Sqrt2, 0, 1 / math.Sqrt2, 2 / math.Sqrt2}
	require.InDeltaSlice(t, expected, col, 1e-12)
}

func TestApplyNormalizeZeroVariance(t *testing.T) {
	b := createTestBatch(t)
	op := Normalize(Columns("income"), Append())
	provider := fitOp(t, op, b)
	require.Nil(t, Apply(op, b, provider))
	col, err := b.GetColumn("income_normalize")
	require.Nil(t, err)
	require.Equal(t, tabular.Float64Column{0, 0, 0, 0, 0}, col)
	// the input column is kept
	col, err = b.GetColumn("income")
	require.Nil(t, err)
	require.Equal(t, tabular.Float64Column{10, 10, 10, 10, 10}, col)
}

func TestApplyCategorify(t *testing.T) {
	b := createTestBatch(t)
	op := Categorify()
	provider := fitOp(t, op, b)
	require.Nil(t, Apply(op, b, provider))
	col, err := b.GetColumn("city")
	require.Nil(t, err)
	// lima=0, oslo=1, paris=2
	require.Equal(t, tabular.Int64Column{2, 1, 2, 0, 1}, col)
}

func TestApplyCategorifyUnseen(t *testing.T) {
	fitted := createTestBatch(t)
	op := Categorify()
	provider := fitOp(t, op, fitted)

	s, err := schema.CreateSchemaFromClasses([]string{"city"}, nil, nil)
	require.Nil(t, err)
	b, err := batch.Create(s, map[string]tabular.Column{"city": tabular.StringColumn{"oslo", "rome"}})
	require.Nil(t, err)
	err = Apply(op, b, provider)
	unseen := errors.UnseenCategoryError{}
	require.ErrorAs(t, err, &unseen)
	require.Equal(t, "rome", unseen.Value)
	require.Equal(t, "city", unseen.Column)
	col, err := b.GetColumn("city")
	require.Nil(t, err)
	require.Equal(t, tabular.StringColumn{"oslo", "rome"}, col)
}

func TestApplyLogAndFillMissing(t *testing.T) {
	s, err := schema.CreateSchemaFromClasses(nil, []string{"x"}, nil)
	require.Nil(t, err)
	b, err := batch.Create(s, map[string]tabular.Column{"x": tabular.Float64Column{1, math.NaN(), math.E}})
	require.Nil(t, err)
	require.Nil(t, Apply(FillMissing(1), b, nil))
	require.Nil(t, Apply(Log(Append()), b, nil))
	col, err := b.GetColumn("x_log")
	require.Nil(t, err)
	require.InDeltaSlice(t, []float64{0, 0, 1}, col, 1e-12)

	// applying again would overwrite x_log
	err = Apply(Log(Append()), b, nil)
	require.ErrorAs(t, err, &errors.NameCollisionError{})
}

func TestApplyRejectsWrongColumnType(t *testing.T) {
	b := createTestBatch(t)
	err := Apply(Log(InClass(tabular.Categorical)), b, nil)
	require.ErrorAs(t, err, &errors.ColumnTypeError{})
}
