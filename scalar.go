package riff

import "fmt"

// ScalarType is the closed set of column value types a Riff file can carry.
// Identifiers are stable on-disk tags; do not renumber existing entries.
type ScalarType uint8

const (
	TypeNull ScalarType = iota
	TypeBoolean
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeString
	TypeDate
	TypeTimestamp
)

func (t ScalarType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeByte:
		return "byte"
	case TypeShort:
		return "short"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeString:
		return "string"
	case TypeDate:
		return "date"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("scalar(%d)", uint8(t))
	}
}

// IsOrderable reports whether the type has a total order, a precondition
// for being used as an indexed column (statistics need min/max).
func (t ScalarType) IsOrderable() bool {
	switch t {
	case TypeBoolean, TypeByte, TypeShort, TypeInt, TypeLong, TypeString, TypeDate, TypeTimestamp:
		return true
	default:
		return false
	}
}

// Row is a polymorphic capability over a single row of values, independent
// of the underlying storage layout: it may be backed by an in-memory
// struct, a decoded stripe buffer, or (as Statistics.asRow does) a
// synthetic [min, max] pseudo-row. Predicate evaluation depends only on this
// interface, never on how a row is physically stored.
type Row interface {
	IsNullAt(ord int) bool
	GetBool(ord int) bool
	GetByte(ord int) int8
	GetShort(ord int) int16
	GetInt(ord int) int32
	GetLong(ord int) int64
	GetUTF8(ord int) string
	GetDate(ord int) int32  // days since epoch
	GetTimestamp(ord int) int64 // microseconds since epoch
}

// Literal is a typed scalar literal carried by predicate leaves. Exactly
// one of the typed fields is meaningful, selected by Type.
type Literal struct {
	Type   ScalarType
	Bool   bool
	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Str    string
	Date   int32
	Ts     int64
}

// NewBoolLiteral, NewIntLiteral, ... construct typed literals.
func NewBoolLiteral(v bool) Literal      { return Literal{Type: TypeBoolean, Bool: v} }
func NewByteLiteral(v int8) Literal      { return Literal{Type: TypeByte, Byte: v} }
func NewShortLiteral(v int16) Literal    { return Literal{Type: TypeShort, Short: v} }
func NewIntLiteral(v int32) Literal      { return Literal{Type: TypeInt, Int: v} }
func NewLongLiteral(v int64) Literal     { return Literal{Type: TypeLong, Long: v} }
func NewStringLiteral(v string) Literal  { return Literal{Type: TypeString, Str: v} }
func NewDateLiteral(v int32) Literal     { return Literal{Type: TypeDate, Date: v} }
func NewTimestampLiteral(v int64) Literal { return Literal{Type: TypeTimestamp, Ts: v} }

// Compare returns -1, 0, 1 for a<b, a==b, a>b. Both literals must share the
// same Type; callers (the Binder rule) are responsible for enforcing that
// up front so Compare never has to report a type mismatch itself.
func (a Literal) Compare(b Literal) int {
	switch a.Type {
	case TypeBoolean:
		return compareBool(a.Bool, b.Bool)
	case TypeByte:
		return compareInt64(int64(a.Byte), int64(b.Byte))
	case TypeShort:
		return compareInt64(int64(a.Short), int64(b.Short))
	case TypeInt:
		return compareInt64(int64(a.Int), int64(b.Int))
	case TypeLong:
		return compareInt64(a.Long, b.Long)
	case TypeString:
		return compareString(a.Str, b.Str)
	case TypeDate:
		return compareInt64(int64(a.Date), int64(b.Date))
	case TypeTimestamp:
		return compareInt64(a.Ts, b.Ts)
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// LiteralFromRow reads the value at ord out of row as a Literal of the
// given type. Used by Statistics.Update and by row-level predicate
// evaluation to bridge the Row interface back into comparable literals.
func LiteralFromRow(row Row, ord int, t ScalarType) Literal {
	switch t {
	case TypeBoolean:
		return NewBoolLiteral(row.GetBool(ord))
	case TypeByte:
		return NewByteLiteral(row.GetByte(ord))
	case TypeShort:
		return NewShortLiteral(row.GetShort(ord))
	case TypeInt:
		return NewIntLiteral(row.GetInt(ord))
	case TypeLong:
		return NewLongLiteral(row.GetLong(ord))
	case TypeString:
		return NewStringLiteral(row.GetUTF8(ord))
	case TypeDate:
		return NewDateLiteral(row.GetDate(ord))
	case TypeTimestamp:
		return NewTimestampLiteral(row.GetTimestamp(ord))
	default:
		return Literal{}
	}
}
