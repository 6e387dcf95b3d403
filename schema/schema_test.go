package schema

import (
	"testing"

	"github.com/go-sif/tabular"
	"github.com/stretchr/testify/require"
)

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", tabular.Categorical)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", tabular.Continuous)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", tabular.Label)
	require.Nil(t, err)

	schema2, err := CreateSchemaFromClasses([]string{"col1"}, []string{"col2"}, []string{"col3"})
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentClass(t *testing.T) {
	schema1, err := CreateSchemaFromClasses([]string{"col1"}, []string{"col2"}, nil)
	require.Nil(t, err)
	schema2, err := CreateSchemaFromClasses([]string{"col1", "col2"}, nil, nil)
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1, err := CreateSchemaFromClasses(nil, []string{"col1", "col2", "col3"}, nil)
	require.Nil(t, err)
	schema2, err := CreateSchemaFromClasses(nil, []string{"col1", "col3", "col2"}, nil)
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestCreateColumnRejectsDuplicates(t *testing.T) {
	s, err := CreateSchemaFromClasses([]string{"uid"}, nil, nil)
	require.Nil(t, err)
	_, err = s.CreateColumn("uid", tabular.Continuous)
	require.NotNil(t, err)
	_, err = s.CreateColumn("anything", tabular.All)
	require.NotNil(t, err)
	require.Equal(t, 1, s.NumColumns())
}

func TestColumnsOfClass(t *testing.T) {
	s, err := CreateSchemaFromClasses([]string{"uid", "iid"}, []string{"age"}, []string{"click"})
	require.Nil(t, err)
	_, err = s.CreateColumn("age_log", tabular.Continuous)
	require.Nil(t, err)

	require.Equal(t, []string{"uid", "iid"}, s.ColumnsOfClass(tabular.Categorical))
	require.Equal(t, []string{"age", "age_log"}, s.ColumnsOfClass(tabular.Continuous))
	require.Equal(t, []string{"click"}, s.ColumnsOfClass(tabular.Label))
	require.Equal(t, []string{"uid", "iid", "age", "click", "age_log"}, s.ColumnsOfClass(tabular.All))

	class, err := s.ClassOf("age_log")
	require.Nil(t, err)
	require.Equal(t, tabular.Continuous, class)
	_, err = s.ClassOf("missing")
	require.NotNil(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	s, err := CreateSchemaFromClasses(nil, []string{"x"}, nil)
	require.Nil(t, err)
	c := s.Clone()
	_, err = c.CreateColumn("y", tabular.Continuous)
	require.Nil(t, err)
	require.False(t, s.HasColumn("y"))
	require.True(t, c.HasColumn("y"))
}
