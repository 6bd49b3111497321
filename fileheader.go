package riff

// FileHeader is the full content of a header file: reserved state
// bytes, the column type description, and an optional opaque string
// properties map. Equality for round-trip purposes compares Properties
// as an unordered map — key ordering on disk is not part of the
// contract.
type FileHeader struct {
	State      [8]byte
	Types      *TypeDescription
	Properties map[string]string // nil means "no properties" (encodes as -1 count)
}

// FooterInfo is the trailing per-file summary: total row count and one
// aggregate Statistics entry per indexed column, in type-description
// order. It lets a caller answer COUNT-style queries (see
// MetadataConfig.CountEnabled) without opening the data file.
type FooterInfo struct {
	NumRows         int64
	AggregateStats  []Statistics
}

// EqualFileHeaders compares two FileHeaders for round-trip equality:
// byte-for-byte State, structurally equal TypeDescription, and
// set-wise-equal Properties (nil and empty are both "no properties").
func EqualFileHeaders(a, b *FileHeader) bool {
	if a.State != b.State {
		return false
	}
	if !equalTypeDescriptions(a.Types, b.Types) {
		return false
	}
	return equalProperties(a.Properties, b.Properties)
}

func equalTypeDescriptions(a, b *TypeDescription) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Size() != b.Size() || a.NumIndexed() != b.NumIndexed() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}

func equalProperties(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
