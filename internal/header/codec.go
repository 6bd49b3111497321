// Package header implements the fixed-layout binary encoding of a Riff
// file header: magic, state bytes, type description, and the optional
// properties map. The layout is defined in full by the file-header codec
// component of the format and must remain byte-stable across versions of
// this package.
package header

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/lychee-technology/riff"
	"github.com/lychee-technology/riff/internal"
)

// Magic is the fixed format tag every header file must begin with.
// Spells "RIFF" in ASCII, big-endian.
const Magic uint32 = 0x52494646

const stateBytes = 8

// Encode serializes fh into the on-disk header format: magic,
// body_length, then the body (state, type description, properties),
// zero-padded so body_length is a multiple of 8.
func Encode(fh *riff.FileHeader) ([]byte, error) {
	var body bytes.Buffer
	if _, err := body.Write(fh.State[:]); err != nil {
		return nil, err
	}
	if err := encodeTypeDescription(&body, fh.Types); err != nil {
		return nil, err
	}
	if err := encodeProperties(&body, fh.Properties); err != nil {
		return nil, err
	}

	raw := body.Bytes()
	padded := padTo8(raw)

	out := make([]byte, 0, 8+len(padded))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], Magic)
	out = append(out, lenBuf[:]...)
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(padded)))
	out = append(out, lenBuf[:]...)
	out = append(out, padded...)
	return out, nil
}

func padTo8(b []byte) []byte {
	rem := len(b) % 8
	if rem == 0 {
		return b
	}
	return append(b, make([]byte, 8-rem)...)
}

// Decode parses a header file's bytes, enforcing maxBodyBytes as the cap
// on body_length before any allocation proportional to it is made.
func Decode(data []byte, maxBodyBytes int) (*riff.FileHeader, error) {
	if len(data) < 8 {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "header shorter than fixed prefix")
	}
	magic := binary.BigEndian.Uint32(data[0:4])
	if magic != Magic {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeMagicMismatch, "magic mismatch").
			WithDetail("want", Magic).WithDetail("got", magic)
	}
	bodyLen := binary.BigEndian.Uint32(data[4:8])
	if maxBodyBytes > 0 && int(bodyLen) > maxBodyBytes {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeBodyTooLarge,
			fmt.Sprintf("body_length %d exceeds cap %d", bodyLen, maxBodyBytes))
	}
	if len(data) < 8+int(bodyLen) {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated header body")
	}
	body := bytes.NewReader(data[8 : 8+int(bodyLen)])

	fh := &riff.FileHeader{}
	if _, err := io.ReadFull(body, fh.State[:]); err != nil {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated state bytes").WithCause(err)
	}
	types, err := decodeTypeDescription(body)
	if err != nil {
		return nil, err
	}
	fh.Types = types

	props, err := decodeProperties(body)
	if err != nil {
		return nil, err
	}
	fh.Properties = props
	return fh, nil
}

func encodeTypeDescription(w *bytes.Buffer, td *riff.TypeDescription) error {
	specs := td.Specs()
	if err := writeI32(w, int32(len(specs))); err != nil {
		return err
	}
	for _, s := range specs {
		if err := w.WriteByte(boolByte(s.Indexed)); err != nil {
			return err
		}
		if err := writeI32(w, int32(s.Position)); err != nil {
			return err
		}
		if err := writeI32(w, int32(s.OrigPosition)); err != nil {
			return err
		}
		if err := w.WriteByte(boolByte(s.Nullable)); err != nil {
			return err
		}
		if err := writeString(w, s.Name); err != nil {
			return err
		}
		if err := w.WriteByte(byte(s.DataType)); err != nil {
			return err
		}
		if err := writeString(w, ""); err != nil { // metadata: reserved, always empty today
			return err
		}
	}
	return nil
}

func decodeTypeDescription(r *bytes.Reader) (*riff.TypeDescription, error) {
	count, err := readI32(r)
	if err != nil {
		return nil, truncated(err)
	}
	if count < 0 {
		return nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "negative type description count")
	}
	specs := make([]riff.TypeSpec, count)
	seenNames := internal.NewSet[string]()
	for i := int32(0); i < count; i++ {
		indexedB, err := r.ReadByte()
		if err != nil {
			return nil, truncated(err)
		}
		position, err := readI32(r)
		if err != nil {
			return nil, truncated(err)
		}
		origPosition, err := readI32(r)
		if err != nil {
			return nil, truncated(err)
		}
		nullableB, err := r.ReadByte()
		if err != nil {
			return nil, truncated(err)
		}
		name, err := readString(r)
		if err != nil {
			return nil, truncated(err)
		}
		tagB, err := r.ReadByte()
		if err != nil {
			return nil, truncated(err)
		}
		if _, err := readString(r); err != nil { // metadata, currently unused
			return nil, truncated(err)
		}
		dt := riff.ScalarType(tagB)
		if !validScalarTag(dt) {
			return nil, riff.NewCorruptHeaderError(riff.ErrCodeUnknownScalarTag,
				fmt.Sprintf("unknown scalar type tag %d", tagB))
		}
		if seenNames.Contains(name) {
			return nil, riff.NewSchemaError(riff.ErrCodeDuplicateName, "duplicate column name in decoded type description: "+name)
		}
		seenNames.Add(name)
		specs[i] = riff.TypeSpec{
			Name:         name,
			DataType:     dt,
			Nullable:     nullableB != 0,
			Indexed:      indexedB != 0,
			Position:     int(position),
			OrigPosition: int(origPosition),
		}
	}
	return riff.NewTypeDescriptionFromSpecs(specs), nil
}

func validScalarTag(t riff.ScalarType) bool {
	return t <= riff.TypeTimestamp
}

func encodeProperties(w *bytes.Buffer, props map[string]string) error {
	if props == nil {
		return writeI32(w, -1)
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := writeI32(w, int32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeString(w, k); err != nil {
			return err
		}
		if err := writeString(w, props[k]); err != nil {
			return err
		}
	}
	return nil
}

func decodeProperties(r *bytes.Reader) (map[string]string, error) {
	count, err := readI32(r)
	if err != nil {
		return nil, truncated(err)
	}
	if count < 0 {
		return nil, nil
	}
	props := make(map[string]string, count)
	for i := int32(0); i < count; i++ {
		k, err := readString(r)
		if err != nil {
			return nil, truncated(err)
		}
		v, err := readString(r)
		if err != nil {
			return nil, truncated(err)
		}
		props[k] = v
	}
	return props, nil
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
	if n < 0 {
		return "", fmt.Errorf("negative string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func truncated(err error) error {
	return riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated header body").WithCause(err)
}
