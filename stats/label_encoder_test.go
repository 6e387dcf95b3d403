package stats

import (
	"testing"

	"github.com/go-sif/tabular"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoderAssignsSortedCodes(t *testing.T) {
	acc := LabelEncoder().Initialize().(*LabelEncoderAccumulator)
	require.Nil(t, acc.Accumulate(tabular.StringColumn{"pear", "apple", "pear", "fig"}))
	require.Equal(t, []string{"apple", "fig", "pear"}, acc.GetCategories())
	code, ok := acc.GetCode("pear")
	require.True(t, ok)
	require.EqualValues(t, 2, code)
	_, ok = acc.GetCode("kiwi")
	require.False(t, ok)
}

func TestLabelEncoderCodesAreMonotone(t *testing.T) {
	acc := LabelEncoder().Initialize().(*LabelEncoderAccumulator)
	require.Nil(t, acc.Accumulate(tabular.StringColumn{"b", "c"}))
	require.Nil(t, acc.Accumulate(tabular.StringColumn{"a", "c", "d"}))
	// earlier codes never move; new categories are appended in sorted order
	require.Equal(t, []string{"b", "c", "a", "d"}, acc.GetCategories())
	code, _ := acc.GetCode("b")
	require.EqualValues(t, 0, code)
	code, _ = acc.GetCode("a")
	require.EqualValues(t, 2, code)
}

func TestLabelEncoderMerge(t *testing.T) {
	left := LabelEncoder().Initialize()
	require.Nil(t, left.Accumulate(tabular.StringColumn{"x", "y"}))
	right := LabelEncoder().Initialize()
	require.Nil(t, right.Accumulate(tabular.StringColumn{"z", "y", "w"}))
	require.Nil(t, left.Merge(right))
	require.Equal(t, []string{"x", "y", "w", "z"}, left.(*LabelEncoderAccumulator).GetCategories())

	// merging partials in batch order matches sequential accumulation
	seq := LabelEncoder().Initialize()
	require.Nil(t, seq.Accumulate(tabular.StringColumn{"x", "y"}))
	require.Nil(t, seq.Accumulate(tabular.StringColumn{"z", "y", "w"}))
	require.Equal(t, seq, left)

	require.NotNil(t, left.Merge(Moments().Initialize()))
}

func TestLabelEncoderInt64Categories(t *testing.T) {
	acc := LabelEncoder().Initialize().(*LabelEncoderAccumulator)
	require.Nil(t, acc.Accumulate(tabular.Int64Column{10, 9, 10}))
	// keys are decimal strings, sorted lexically
	require.Equal(t, []string{"10", "9"}, acc.GetCategories())
	require.NotNil(t, acc.Accumulate(tabular.Float64Column{1.5}))
}

func TestLabelEncoderSerialization(t *testing.T) {
	acc := LabelEncoder().Initialize()
	require.Nil(t, acc.Accumulate(tabular.StringColumn{"b", "a"}))
	require.Nil(t, acc.Accumulate(tabular.StringColumn{"0"}))
	buff, err := acc.ToBytes()
	require.Nil(t, err)
	restored, err := acc.FromBytes(buff)
	require.Nil(t, err)
	require.Equal(t, acc, restored)
}

func TestLabelEncoderClone(t *testing.T) {
	acc := LabelEncoder().Initialize()
	require.Nil(t, acc.Accumulate(tabular.StringColumn{"a"}))
	clone := acc.Clone()
	require.Nil(t, clone.Accumulate(tabular.StringColumn{"b"}))
	require.Equal(t, 1, acc.(*LabelEncoderAccumulator).Len())
	require.Equal(t, 2, clone.(*LabelEncoderAccumulator).Len())
}
