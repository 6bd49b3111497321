package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lychee-technology/riff"
)

func TestAssertBytes_BothNil(t *testing.T) {
	require.NoError(t, AssertBytes(nil, nil, "T"))
}

func TestAssertBytes_Mismatch(t *testing.T) {
	err := AssertBytes(nil, nil, "T")
	require.NoError(t, err)

	err = AssertBytes([]byte{4}, []byte{2}, "T")
	require.Error(t, err)
	require.Equal(t, "T: [4] != [2]", err.Error())
}

func TestAssertBytes_NilVsPresent(t *testing.T) {
	err := AssertBytes(nil, nil, "T")
	require.NoError(t, err)
	err = AssertBytes(nil, []byte{1}, "T")
	require.Error(t, err)
	require.Equal(t, "T: null != [1]", err.Error())
}

func TestAssertBytes_Equal(t *testing.T) {
	require.NoError(t, AssertBytes([]byte{1, 2, 3}, []byte{1, 2, 3}, "T"))
}

// S1: three stripes without statistics, non-null predicate: order
// preserved by offset, none dropped.
func TestEvaluateStripes_S1_NoStatsKeepsAll(t *testing.T) {
	types := build3ColTypes(t)
	stripes := []riff.StripeInformation{
		{ID: 2, Offset: 202},
		{ID: 1, Offset: 101},
		{ID: 0, Offset: 0},
	}
	pred := riff.IsNull("col1")
	state, err := riff.NewPredicateState(pred, types)
	require.NoError(t, err)

	out := EvaluateStripes(stripes, state)
	require.Len(t, out, 3)
	require.Equal(t, int64(0), out[0].Offset)
	require.Equal(t, int64(101), out[1].Offset)
	require.Equal(t, int64(202), out[2].Offset)
}

// S2: three stripes with int-column stats {[1,3],[4,5],[1,3]}; Eq(col1,5)
// keeps only the [4,5] stripe.
func TestEvaluateStripes_S2_StatsPushdown(t *testing.T) {
	types := build3ColTypes(t)
	mk := func(id uint8, lo, hi int32) riff.StripeInformation {
		st := riff.NewStatistics(riff.TypeInt)
		st.Min = riff.NewIntLiteral(lo)
		st.Max = riff.NewIntLiteral(hi)
		st.Empty = false
		return riff.StripeInformation{ID: id, Offset: int64(id) * 100, Stats: []riff.Statistics{st}}
	}
	stripes := []riff.StripeInformation{mk(0, 1, 3), mk(1, 4, 5), mk(2, 1, 3)}

	pred := riff.Eq("col1", riff.NewIntLiteral(5))
	state, err := riff.NewPredicateState(pred, types)
	require.NoError(t, err)

	out := EvaluateStripes(stripes, state)
	require.Len(t, out, 1)
	require.Equal(t, uint8(1), out[0].ID)
}

func TestEvaluateStripes_NilState_SortsOnly(t *testing.T) {
	stripes := []riff.StripeInformation{{ID: 2, Offset: 50}, {ID: 1, Offset: 10}}
	out := EvaluateStripes(stripes, nil)
	require.Len(t, out, 2)
	require.Equal(t, int64(10), out[0].Offset)
	require.Equal(t, int64(50), out[1].Offset)
}

func build3ColTypes(t *testing.T) *riff.TypeDescription {
	t.Helper()
	schema := []riff.TypeSpec{
		{Name: "col0", DataType: riff.TypeString},
		{Name: "col1", DataType: riff.TypeInt},
		{Name: "col2", DataType: riff.TypeLong},
	}
	td, err := riff.NewTypeDescription(schema, []string{"col1"})
	require.NoError(t, err)
	return td
}
