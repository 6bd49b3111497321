// Package columnfilter implements the concrete ColumnFilter shape this
// module ships: a small fixed-size bloom-style bit array hashed with
// xxh3, sized from a stripe's own row count rather than a pre-sized
// global filter. holiman/bloomfilter/v2 (used elsewhere in the example
// pack for a chain-wide, pre-sized filter keyed by an 8-byte hash) does
// not fit a per-stripe filter whose size depends on that stripe's
// stripe_rows — see DESIGN.md.
package columnfilter

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/lychee-technology/riff"
)

const numHashes = 4

// BitFilter is a fixed-size bit array membership oracle. It satisfies
// riff.ColumnFilter: MayContain never returns false for a value that was
// Add-ed (no false negatives), and may return true for values that
// weren't (false positives).
type BitFilter struct {
	bits []byte
	nbit uint64
}

// New sizes a filter for expectedRows values at roughly a 1% false
// positive rate (the standard ~10 bits/element bloom sizing), with a
// floor so small stripes still get a usable filter.
func New(expectedRows int) *BitFilter {
	n := expectedRows
	if n < 1 {
		n = 1
	}
	nbit := uint64(math.Ceil(float64(n) * 10))
	if nbit < 64 {
		nbit = 64
	}
	return &BitFilter{bits: make([]byte, (nbit+7)/8), nbit: nbit}
}

// Add records v as present.
func (f *BitFilter) Add(v riff.Literal) {
	for _, pos := range f.positions(v) {
		f.bits[pos/8] |= 1 << (pos % 8)
	}
}

// MayContain implements riff.ColumnFilter.
func (f *BitFilter) MayContain(v riff.Literal) bool {
	for _, pos := range f.positions(v) {
		if f.bits[pos/8]&(1<<(pos%8)) == 0 {
			return false
		}
	}
	return true
}

func (f *BitFilter) positions(v riff.Literal) []uint64 {
	key := literalBytes(v)
	h1 := xxh3.HashSeed(key, 0)
	h2 := xxh3.HashSeed(key, 1)
	out := make([]uint64, numHashes)
	for i := 0; i < numHashes; i++ {
		// double hashing: combine two independent hashes instead of
		// computing numHashes separate xxh3 passes.
		out[i] = (h1 + uint64(i)*h2) % f.nbit
	}
	return out
}

func literalBytes(v riff.Literal) []byte {
	var buf [8]byte
	switch v.Type {
	case riff.TypeBoolean:
		if v.Bool {
			return []byte{1}
		}
		return []byte{0}
	case riff.TypeByte:
		return []byte{byte(v.Byte)}
	case riff.TypeShort:
		binary.BigEndian.PutUint16(buf[:2], uint16(v.Short))
		return append([]byte(nil), buf[:2]...)
	case riff.TypeInt, riff.TypeDate:
		val := v.Int
		if v.Type == riff.TypeDate {
			val = v.Date
		}
		binary.BigEndian.PutUint32(buf[:4], uint32(val))
		return append([]byte(nil), buf[:4]...)
	case riff.TypeLong, riff.TypeTimestamp:
		val := v.Long
		if v.Type == riff.TypeTimestamp {
			val = v.Ts
		}
		binary.BigEndian.PutUint64(buf[:8], uint64(val))
		return append([]byte(nil), buf[:8]...)
	case riff.TypeString:
		return []byte(v.Str)
	default:
		return nil
	}
}

// Marshal serializes f to a self-contained byte blob: nbit followed by
// the raw bit array.
func (f *BitFilter) Marshal() []byte {
	out := make([]byte, 8+len(f.bits))
	binary.BigEndian.PutUint64(out[:8], f.nbit)
	copy(out[8:], f.bits)
	return out
}

// Unmarshal reconstructs a BitFilter from bytes produced by Marshal.
func Unmarshal(data []byte) (*BitFilter, error) {
	if len(data) < 8 {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated column filter")
	}
	nbit := binary.BigEndian.Uint64(data[:8])
	bits := append([]byte(nil), data[8:]...)
	return &BitFilter{bits: bits, nbit: nbit}, nil
}
