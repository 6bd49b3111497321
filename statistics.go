package riff

// OrdMin and OrdMax are the ordinals of the synthetic [min, max]
// pseudo-row (statsRow): a single row holding only the column's minimum
// (ordinal 0) and maximum (ordinal 1) observed values.
const (
	OrdMin = 0
	OrdMax = 1
)

// Statistics is the per-column per-stripe summary: the minimum and
// maximum non-null value observed (under DataType's total order) and
// whether any null was observed. Empty (no non-null values seen) is a
// distinct sentinel state: every comparison against it returns false.
// HasNulls is tracked independently of Empty: fresh statistics have it
// false, and a stripe that saw only nulls stays Empty with HasNulls true.
type Statistics struct {
	DataType ScalarType
	HasNulls bool
	Empty    bool
	Min      Literal
	Max      Literal
}

// NewStatistics returns the empty-state Statistics for a column of the
// given type: no rows observed yet.
func NewStatistics(t ScalarType) Statistics {
	return Statistics{DataType: t, Empty: true}
}

// Update widens Min/Max with the value at ord in row, and flips HasNulls
// if the value is null. Contract: after any sequence of Update calls,
// min ≤ v ≤ max holds for every non-null v observed.
func (s *Statistics) Update(row Row, ord int) {
	if row.IsNullAt(ord) {
		s.HasNulls = true
		return
	}
	v := LiteralFromRow(row, ord, s.DataType)
	if s.Empty {
		s.Min = v
		s.Max = v
		s.Empty = false
		return
	}
	if v.Compare(s.Min) < 0 {
		s.Min = v
	}
	if v.Compare(s.Max) > 0 {
		s.Max = v
	}
}

// statsRow is the synthetic [min, max] row view of a Statistics:
// ordinal OrdMin yields Min, OrdMax yields Max. It implements Row; the
// Expr methods below compare Min and Max directly and do not go through
// it.
type statsRow struct {
	min, max Literal
}

func (s Statistics) asRow() statsRow {
	return statsRow{min: s.Min, max: s.Max}
}

func (r statsRow) pick(ord int) Literal {
	if ord == OrdMin {
		return r.min
	}
	return r.max
}

func (r statsRow) IsNullAt(ord int) bool         { return false }
func (r statsRow) GetBool(ord int) bool          { return r.pick(ord).Bool }
func (r statsRow) GetByte(ord int) int8          { return r.pick(ord).Byte }
func (r statsRow) GetShort(ord int) int16        { return r.pick(ord).Short }
func (r statsRow) GetInt(ord int) int32          { return r.pick(ord).Int }
func (r statsRow) GetLong(ord int) int64         { return r.pick(ord).Long }
func (r statsRow) GetUTF8(ord int) string        { return r.pick(ord).Str }
func (r statsRow) GetDate(ord int) int32         { return r.pick(ord).Date }
func (r statsRow) GetTimestamp(ord int) int64    { return r.pick(ord).Ts }

// EqExpr reports whether some value in [min,max] could equal x:
// min ≤ x ≤ max, and the stripe saw at least one non-null value.
func (s Statistics) EqExpr(x Literal) bool {
	if s.Empty {
		return false
	}
	return s.Min.Compare(x) <= 0 && s.Max.Compare(x) >= 0
}

// GtExpr reports whether some value could be greater than x: max > x.
func (s Statistics) GtExpr(x Literal) bool {
	if s.Empty {
		return false
	}
	return s.Max.Compare(x) > 0
}

// LtExpr reports whether some value could be less than x: min < x.
func (s Statistics) LtExpr(x Literal) bool {
	if s.Empty {
		return false
	}
	return s.Min.Compare(x) < 0
}

// GeExpr reports whether some value could be ≥ x: max ≥ x.
func (s Statistics) GeExpr(x Literal) bool {
	if s.Empty {
		return false
	}
	return s.Max.Compare(x) >= 0
}

// LeExpr reports whether some value could be ≤ x: min ≤ x.
func (s Statistics) LeExpr(x Literal) bool {
	if s.Empty {
		return false
	}
	return s.Min.Compare(x) <= 0
}

// InExpr reports whether any literal in set could fall within [min,max].
func (s Statistics) InExpr(set []Literal) bool {
	if s.Empty {
		return false
	}
	for _, x := range set {
		if s.Min.Compare(x) <= 0 && s.Max.Compare(x) >= 0 {
			return true
		}
	}
	return false
}
