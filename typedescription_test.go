package riff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTypeDescription_IndexedPrefixOrdering(t *testing.T) {
	schema := []TypeSpec{
		{Name: "a", DataType: TypeString},
		{Name: "b", DataType: TypeInt},
		{Name: "c", DataType: TypeLong},
	}
	td, err := NewTypeDescription(schema, []string{"c", "a"})
	require.NoError(t, err)
	require.Equal(t, 3, td.Size())
	require.Equal(t, 2, td.NumIndexed())

	// indexed columns come first, in original schema order: a, then c
	require.Equal(t, "a", td.At(0).Name)
	require.Equal(t, "c", td.At(1).Name)
	require.Equal(t, "b", td.At(2).Name)

	require.True(t, td.At(0).Indexed)
	require.True(t, td.At(1).Indexed)
	require.False(t, td.At(2).Indexed)

	require.Equal(t, []string{"a", "c"}, td.indexedNamesSorted())

	ord, err := td.Position("b")
	require.NoError(t, err)
	require.Equal(t, 2, ord)
}

func TestNewTypeDescription_DuplicateName(t *testing.T) {
	schema := []TypeSpec{
		{Name: "a", DataType: TypeInt},
		{Name: "a", DataType: TypeLong},
	}
	_, err := NewTypeDescription(schema, nil)
	require.Error(t, err)
	require.True(t, IsErrorType(err, ErrorTypeSchema))
}

func TestNewTypeDescription_UnknownIndexedName(t *testing.T) {
	schema := []TypeSpec{{Name: "a", DataType: TypeInt}}
	_, err := NewTypeDescription(schema, []string{"ghost"})
	require.Error(t, err)
	require.True(t, IsErrorType(err, ErrorTypeSchema))
}

func TestNewTypeDescription_NotOrderableIndexed(t *testing.T) {
	schema := []TypeSpec{{Name: "a", DataType: TypeNull}}
	_, err := NewTypeDescription(schema, []string{"a"})
	require.Error(t, err)
	require.True(t, IsErrorType(err, ErrorTypeSchema))
}

func TestTypeDescription_Position_Unknown(t *testing.T) {
	td, err := NewTypeDescription([]TypeSpec{{Name: "a", DataType: TypeInt}}, nil)
	require.NoError(t, err)

	_, err = td.Position("ghost")
	require.Error(t, err)
	require.True(t, IsErrorType(err, ErrorTypeUnknownColumn))
}

func TestNewTypeDescriptionFromSpecs_TrustsCaller(t *testing.T) {
	specs := []TypeSpec{
		{Name: "x", DataType: TypeInt, Indexed: true, Position: 0},
		{Name: "y", DataType: TypeString, Indexed: false, Position: 1},
	}
	td := NewTypeDescriptionFromSpecs(specs)
	require.Equal(t, 2, td.Size())
	require.Equal(t, 1, td.NumIndexed())
}
