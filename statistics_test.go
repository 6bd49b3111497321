package riff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatistics_UpdateWidensMinMax(t *testing.T) {
	s := NewStatistics(TypeInt)
	require.True(t, s.Empty)

	row := newFakeRow()
	row.ints[0] = 5
	s.Update(row, 0)
	require.False(t, s.Empty)
	require.Equal(t, NewIntLiteral(5), s.Min)
	require.Equal(t, NewIntLiteral(5), s.Max)

	row.ints[0] = 1
	s.Update(row, 0)
	require.Equal(t, NewIntLiteral(1), s.Min)
	require.Equal(t, NewIntLiteral(5), s.Max)

	row.ints[0] = 9
	s.Update(row, 0)
	require.Equal(t, NewIntLiteral(1), s.Min)
	require.Equal(t, NewIntLiteral(9), s.Max)
}

func TestStatistics_UpdateNullDoesNotWiden(t *testing.T) {
	s := NewStatistics(TypeInt)
	row := newFakeRow()
	row.nulls[0] = true
	s.Update(row, 0)

	require.True(t, s.HasNulls)
	require.True(t, s.Empty)
}

func TestStatistics_EmptyExprsAreAllFalse(t *testing.T) {
	s := NewStatistics(TypeInt)
	lit := NewIntLiteral(1)
	require.False(t, s.EqExpr(lit))
	require.False(t, s.GtExpr(lit))
	require.False(t, s.LtExpr(lit))
	require.False(t, s.GeExpr(lit))
	require.False(t, s.LeExpr(lit))
	require.False(t, s.InExpr([]Literal{lit}))
}

func TestStatistics_RangeExprs(t *testing.T) {
	s := Statistics{DataType: TypeInt, Min: NewIntLiteral(10), Max: NewIntLiteral(20)}

	require.True(t, s.EqExpr(NewIntLiteral(15)))
	require.False(t, s.EqExpr(NewIntLiteral(25)))

	require.True(t, s.GtExpr(NewIntLiteral(15)))  // max(20) > 15
	require.False(t, s.GtExpr(NewIntLiteral(20))) // max(20) not > 20

	require.True(t, s.LtExpr(NewIntLiteral(15))) // min(10) < 15
	require.False(t, s.LtExpr(NewIntLiteral(10)))

	require.True(t, s.GeExpr(NewIntLiteral(20)))
	require.False(t, s.GeExpr(NewIntLiteral(21)))

	require.True(t, s.LeExpr(NewIntLiteral(10)))
	require.False(t, s.LeExpr(NewIntLiteral(9)))

	require.True(t, s.InExpr([]Literal{NewIntLiteral(5), NewIntLiteral(15)}))
	require.False(t, s.InExpr([]Literal{NewIntLiteral(5), NewIntLiteral(25)}))
}
