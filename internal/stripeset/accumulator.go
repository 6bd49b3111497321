// Package stripeset accumulates and combines candidate stripe ordinals
// during pushdown evaluation. Statistics pushdown and column-filter
// pushdown each produce an independent survivor set over the same
// universe of stripe ordinals; the planner intersects them to get the
// final set of stripes worth reading. A roaring bitmap (as used
// elsewhere in the example pack for large sparse integer sets) is a
// natural fit: stripe ordinals are small dense-ish integers and the
// planner only ever needs membership, intersection, and a sorted walk.
package stripeset

import (
	roaring "github.com/RoaringBitmap/roaring/v2"
)

// Accumulator is a set of stripe ordinals (uint32) supporting the
// operations the planner needs: membership, union, intersection, and an
// ascending walk for deterministic read order.
type Accumulator struct {
	bm *roaring.Bitmap
}

// New returns an empty accumulator.
func New() *Accumulator {
	return &Accumulator{bm: roaring.New()}
}

// Full returns an accumulator containing every ordinal in [0, n).
func Full(n int) *Accumulator {
	a := New()
	for i := 0; i < n; i++ {
		a.Add(uint32(i))
	}
	return a
}

// Add records ordinal as a survivor.
func (a *Accumulator) Add(ordinal uint32) {
	a.bm.Add(ordinal)
}

// Contains reports whether ordinal currently survives.
func (a *Accumulator) Contains(ordinal uint32) bool {
	return a.bm.Contains(ordinal)
}

// Remove drops ordinal from the surviving set.
func (a *Accumulator) Remove(ordinal uint32) {
	a.bm.Remove(ordinal)
}

// And intersects a with other in place, keeping only ordinals present in
// both: the combination rule for two independently computed pushdown
// survivor sets (stats pushdown and filter pushdown must both agree a
// stripe is worth reading).
func (a *Accumulator) And(other *Accumulator) {
	a.bm.And(other.bm)
}

// Or unions a with other in place.
func (a *Accumulator) Or(other *Accumulator) {
	a.bm.Or(other.bm)
}

// Len returns the number of surviving ordinals.
func (a *Accumulator) Len() int {
	return int(a.bm.GetCardinality())
}

// SortedSlice returns the surviving ordinals in ascending order.
func (a *Accumulator) SortedSlice() []uint32 {
	return a.bm.ToArray()
}
