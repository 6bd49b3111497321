package riff

// StripeInformation describes one stripe in the data file: its id, byte
// range, and (optionally) the per-indexed-column statistics and column
// filters computed for it. Stats and Filter, when present, have length
// equal to the type description's NumIndexed(), ordinal-aligned.
type StripeInformation struct {
	ID     uint8
	Offset int64
	Length int32
	Stats  []Statistics   // nil if statistics were not written for this stripe
	Filter []ColumnFilter // nil if column filters were not written for this stripe
}

// HasStats reports whether per-column statistics were recorded.
func (s StripeInformation) HasStats() bool { return s.Stats != nil }

// HasFilter reports whether per-column filters were recorded.
func (s StripeInformation) HasFilter() bool { return s.Filter != nil }
