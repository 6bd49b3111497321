// Package stripeindex implements the binary encoding of the stripe index
// block (one entry per stripe: id, byte range, and optional per-indexed-
// column statistics/filters) and the trailing footer block (row count and
// file-wide aggregate statistics), both stored in the Riff header file
// after the encoded header body.
package stripeindex

import (
	"bytes"
	"encoding/binary"
	"io"

	"go.uber.org/multierr"

	"github.com/lychee-technology/riff"
	"github.com/lychee-technology/riff/internal"
	"github.com/lychee-technology/riff/internal/columnfilter"
)

// EncodeStripes serializes stripes into the stripe index block:
// num_stripes i32, then per stripe id/offset/length/stats/filter, with
// stats and filter arrays (when present) laid out one entry per indexed
// column in types' ordinal order.
func EncodeStripes(stripes []riff.StripeInformation, types *riff.TypeDescription) ([]byte, error) {
	var w bytes.Buffer
	if err := writeI32(&w, int32(len(stripes))); err != nil {
		return nil, err
	}
	for _, s := range stripes {
		if err := encodeStripe(&w, s, types); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// DecodeStripes parses a stripe index block previously written by
// EncodeStripes.
func DecodeStripes(data []byte, types *riff.TypeDescription) ([]riff.StripeInformation, error) {
	r := bytes.NewReader(data)
	count, err := readI32(r)
	if err != nil {
		return nil, truncated(err)
	}
	if count < 0 {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "negative stripe count")
	}
	stripes := make([]riff.StripeInformation, count)
	seenIDs := internal.NewSet[uint8]()
	// Truncation aborts immediately since it desyncs the reader's byte
	// offset; duplicate-id violations don't, so they're accumulated across
	// every stripe in the block and reported together.
	var validationErrs error
	for i := int32(0); i < count; i++ {
		s, err := decodeStripe(r, types)
		if err != nil {
			return nil, err
		}
		if seenIDs.Contains(s.ID) {
			validationErrs = multierr.Append(validationErrs, riff.NewCorruptHeaderError(
				riff.ErrCodeDuplicateStripeID, "duplicate stripe id in stripe index").
				WithDetail("id", s.ID).WithDetail("index", i))
		}
		seenIDs.Add(s.ID)
		stripes[i] = s
	}
	if validationErrs != nil {
		return nil, validationErrs
	}
	return stripes, nil
}

func encodeStripe(w *bytes.Buffer, s riff.StripeInformation, types *riff.TypeDescription) error {
	if err := w.WriteByte(s.ID); err != nil {
		return err
	}
	if err := writeI64(w, s.Offset); err != nil {
		return err
	}
	if err := writeI32(w, s.Length); err != nil {
		return err
	}

	if err := w.WriteByte(boolByte(s.HasStats())); err != nil {
		return err
	}
	if s.HasStats() {
		for ord := 0; ord < types.NumIndexed(); ord++ {
			if err := encodeStatistics(w, s.Stats[ord]); err != nil {
				return err
			}
		}
	}

	if err := w.WriteByte(boolByte(s.HasFilter())); err != nil {
		return err
	}
	if s.HasFilter() {
		for ord := 0; ord < types.NumIndexed(); ord++ {
			if err := encodeFilter(w, s.Filter[ord]); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeStripe(r *bytes.Reader, types *riff.TypeDescription) (riff.StripeInformation, error) {
	var s riff.StripeInformation
	id, err := r.ReadByte()
	if err != nil {
		return s, truncated(err)
	}
	s.ID = id

	offset, err := readI64(r)
	if err != nil {
		return s, truncated(err)
	}
	s.Offset = offset

	length, err := readI32(r)
	if err != nil {
		return s, truncated(err)
	}
	s.Length = length

	statsPresent, err := r.ReadByte()
	if err != nil {
		return s, truncated(err)
	}
	if statsPresent != 0 {
		stats := make([]riff.Statistics, types.NumIndexed())
		for ord := 0; ord < types.NumIndexed(); ord++ {
			st, err := decodeStatistics(r, types.At(ord).DataType)
			if err != nil {
				return s, err
			}
			stats[ord] = st
		}
		s.Stats = stats
	}

	filterPresent, err := r.ReadByte()
	if err != nil {
		return s, truncated(err)
	}
	if filterPresent != 0 {
		filters := make([]riff.ColumnFilter, types.NumIndexed())
		for ord := 0; ord < types.NumIndexed(); ord++ {
			f, err := decodeFilter(r)
			if err != nil {
				return s, err
			}
			filters[ord] = f
		}
		s.Filter = filters
	}
	return s, nil
}

func encodeStatistics(w *bytes.Buffer, s riff.Statistics) error {
	if err := w.WriteByte(boolByte(s.HasNulls)); err != nil {
		return err
	}
	if err := w.WriteByte(boolByte(s.Empty)); err != nil {
		return err
	}
	if s.Empty {
		return nil
	}
	if err := writeLiteral(w, s.Min); err != nil {
		return err
	}
	return writeLiteral(w, s.Max)
}

func decodeStatistics(r *bytes.Reader, dt riff.ScalarType) (riff.Statistics, error) {
	s := riff.Statistics{DataType: dt}
	hasNullsB, err := r.ReadByte()
	if err != nil {
		return s, truncated(err)
	}
	s.HasNulls = hasNullsB != 0

	emptyB, err := r.ReadByte()
	if err != nil {
		return s, truncated(err)
	}
	s.Empty = emptyB != 0
	if s.Empty {
		return s, nil
	}

	min, err := readLiteral(r, dt)
	if err != nil {
		return s, err
	}
	max, err := readLiteral(r, dt)
	if err != nil {
		return s, err
	}
	s.Min, s.Max = min, max
	return s, nil
}

func encodeFilter(w *bytes.Buffer, f riff.ColumnFilter) error {
	bf, ok := f.(*columnfilter.BitFilter)
	if !ok || bf == nil {
		return writeI32(w, -1)
	}
	blob := bf.Marshal()
	if err := writeI32(w, int32(len(blob))); err != nil {
		return err
	}
	_, err := w.Write(blob)
	return err
}

func decodeFilter(r *bytes.Reader) (riff.ColumnFilter, error) {
	n, err := readI32(r)
	if err != nil {
		return nil, truncated(err)
	}
	if n < 0 {
		return nil, nil
	}
	blob := make([]byte, n)
	if _, err := io.ReadFull(r, blob); err != nil {
		return nil, truncated(err)
	}
	bf, err := columnfilter.Unmarshal(blob)
	if err != nil {
		return nil, err
	}
	return bf, nil
}

// EncodeFooter serializes the file-wide footer info block: num_rows i64,
// the number of aggregate Statistics entries as i32, then one Statistics
// entry per indexed column.
func EncodeFooter(fi riff.FooterInfo) ([]byte, error) {
	var w bytes.Buffer
	if err := writeI64(&w, fi.NumRows); err != nil {
		return nil, err
	}
	if err := writeI32(&w, int32(len(fi.AggregateStats))); err != nil {
		return nil, err
	}
	for _, st := range fi.AggregateStats {
		if err := encodeStatistics(&w, st); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// DecodeFooter parses a footer info block previously written by
// EncodeFooter. types supplies the per-ordinal data type needed to decode
// each aggregate Statistics entry.
func DecodeFooter(data []byte, types *riff.TypeDescription) (riff.FooterInfo, error) {
	r := bytes.NewReader(data)
	var fi riff.FooterInfo
	numRows, err := readI64(r)
	if err != nil {
		return fi, truncated(err)
	}
	fi.NumRows = numRows

	count, err := readI32(r)
	if err != nil {
		return fi, truncated(err)
	}
	if count < 0 {
		return fi, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "negative aggregate stats count")
	}
	stats := make([]riff.Statistics, count)
	for i := int32(0); i < count; i++ {
		dt := riff.TypeNull
		if int(i) < types.NumIndexed() {
			dt = types.At(int(i)).DataType
		}
		st, err := decodeStatistics(r, dt)
		if err != nil {
			return fi, err
		}
		stats[i] = st
	}
	fi.AggregateStats = stats
	return fi, nil
}

func writeLiteral(w *bytes.Buffer, v riff.Literal) error {
	switch v.Type {
	case riff.TypeBoolean:
		return w.WriteByte(boolByte(v.Bool))
	case riff.TypeByte:
		return w.WriteByte(byte(v.Byte))
	case riff.TypeShort:
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(v.Short))
		_, err := w.Write(buf[:])
		return err
	case riff.TypeInt:
		return writeI32(w, v.Int)
	case riff.TypeDate:
		return writeI32(w, v.Date)
	case riff.TypeLong:
		return writeI64(w, v.Long)
	case riff.TypeTimestamp:
		return writeI64(w, v.Ts)
	case riff.TypeString:
		return writeString(w, v.Str)
	default:
		return nil
	}
}

func readLiteral(r *bytes.Reader, dt riff.ScalarType) (riff.Literal, error) {
	switch dt {
	case riff.TypeBoolean:
		b, err := r.ReadByte()
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewBoolLiteral(b != 0), nil
	case riff.TypeByte:
		b, err := r.ReadByte()
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewByteLiteral(int8(b)), nil
	case riff.TypeShort:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewShortLiteral(int16(binary.BigEndian.Uint16(buf[:]))), nil
	case riff.TypeInt:
		v, err := readI32(r)
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewIntLiteral(v), nil
	case riff.TypeDate:
		v, err := readI32(r)
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewDateLiteral(v), nil
	case riff.TypeLong:
		v, err := readI64(r)
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewLongLiteral(v), nil
	case riff.TypeTimestamp:
		v, err := readI64(r)
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewTimestampLiteral(v), nil
	case riff.TypeString:
		s, err := readString(r)
		if err != nil {
			return riff.Literal{}, truncated(err)
		}
		return riff.NewStringLiteral(s), nil
	default:
		return riff.Literal{}, nil
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func writeI32(w *bytes.Buffer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func readI32(r *bytes.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func writeI64(w *bytes.Buffer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func readI64(r *bytes.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func writeString(w *bytes.Buffer, s string) error {
	if err := writeI32(w, int32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readI32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func truncated(err error) error {
	return riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated stripe index").WithCause(err)
}
