package planner

import (
	"github.com/lychee-technology/riff"
	"github.com/lychee-technology/riff/internal/stripestream"
)

// RowDecoder turns a decompressed stripe buffer into its rows. The
// stripe payload's row-level layout is an external concern (the
// block-compressed stream and its row format are assumed to exist, per
// this module's stated scope); RowIterator only owns decompression and
// predicate re-evaluation, and hands decompressed bytes to whatever
// RowDecoder the caller supplies.
type RowDecoder interface {
	DecodeRows(stripe riff.StripeInformation, decompressed []byte) ([]riff.Row, error)
}

// RowIterator walks the surviving stripes produced by PrepareRead in
// offset order, decompressing each and re-evaluating the predicate
// row-by-row (stripe-level pushdown is necessary-but-not-sufficient: a
// surviving stripe may still contain rows that don't match).
type RowIterator struct {
	reader  *Reader
	state   *riff.PredicateState
	stripes []riff.StripeInformation
	codec   stripestream.Codec
	decoder RowDecoder

	stripeIdx int
	rows      []riff.Row
	rowIdx    int
	rowsRead  int64
	closed    bool
}

// SetRowDecoder installs the row decoder used to parse decompressed
// stripe buffers. Must be called before the first Next.
func (it *RowIterator) SetRowDecoder(d RowDecoder) {
	it.decoder = d
}

// Next advances to the next matching row. It returns (row, true, nil) on
// success, (nil, false, nil) at end of stream, or a non-nil error on
// failure (which also closes the session, per the no-partial-success
// propagation policy).
func (it *RowIterator) Next() (riff.Row, bool, error) {
	if it.closed {
		return nil, false, riff.NewStateViolationError(riff.SessionClosed, riff.SessionStreaming)
	}
	if it.reader.state == riff.SessionPlanned {
		it.reader.state = riff.SessionStreaming
	}
	if err := it.reader.requireState(riff.SessionStreaming); err != nil {
		return nil, false, err
	}

	for {
		if it.rowIdx < len(it.rows) {
			row := it.rows[it.rowIdx]
			it.rowIdx++
			if it.state == nil || it.state.EvaluateRow(row) {
				it.rowsRead++
				return row, true, nil
			}
			continue
		}

		it.stripeIdx++
		if it.stripeIdx >= len(it.stripes) {
			riff.EmitRowsRead(it.reader.headerPath, it.rowsRead)
			return nil, false, nil
		}
		if it.decoder == nil {
			// No row decoder installed: nothing to yield, but stripe
			// traversal itself still must succeed so callers that only
			// care about stripe-level pushdown can drive this loop to
			// completion.
			if _, err := it.loadStripe(it.stripes[it.stripeIdx]); err != nil {
				it.reader.fail()
				return nil, false, err
			}
			it.rows = nil
			it.rowIdx = 0
			continue
		}

		decompressed, err := it.loadStripe(it.stripes[it.stripeIdx])
		if err != nil {
			it.reader.fail()
			return nil, false, err
		}
		rows, err := it.decoder.DecodeRows(it.stripes[it.stripeIdx], decompressed)
		if err != nil {
			it.reader.fail()
			return nil, false, err
		}
		it.rows = rows
		it.rowIdx = 0
	}
}

func (it *RowIterator) loadStripe(s riff.StripeInformation) ([]byte, error) {
	raw, err := it.reader.readStripeBytes(s)
	if err != nil {
		return nil, err
	}
	return it.codec.Decompress(raw)
}

// Close releases the underlying reader session. Safe to call multiple
// times and safe to call without having exhausted Next.
func (it *RowIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.reader.Close()
}

func (r *Reader) readStripeBytes(s riff.StripeInformation) ([]byte, error) {
	h, err := r.fs.OpenAt(r.dataPath, s.Offset)
	if err != nil {
		return nil, riff.NewIOError("opening data file at stripe offset", err)
	}
	defer h.Close()

	buf := make([]byte, s.Length)
	if err := h.ReadFull(buf); err != nil {
		return nil, riff.NewIOError("reading stripe bytes", err)
	}
	return buf, nil
}
