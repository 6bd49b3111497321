package planner

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lychee-technology/riff"
	"github.com/lychee-technology/riff/internal/header"
	"github.com/lychee-technology/riff/internal/stripeindex"
)

type memFileSystem struct {
	files map[string][]byte
}

func newMemFileSystem() *memFileSystem {
	return &memFileSystem{files: make(map[string][]byte)}
}

func (m *memFileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errNotFound(path)
	}
	return data, nil
}

func (m *memFileSystem) OpenAt(path string, offset int64) (ReadAtCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errNotFound(path)
	}
	return &memHandle{data: data, pos: int(offset)}, nil
}

type memHandle struct {
	data []byte
	pos  int
}

func (h *memHandle) ReadFull(buf []byte) error {
	if h.pos+len(buf) > len(h.data) {
		return errShortRead
	}
	copy(buf, h.data[h.pos:h.pos+len(buf)])
	h.pos += len(buf)
	return nil
}

func (h *memHandle) Close() error { return nil }

type notFoundError string

func (e notFoundError) Error() string { return "file not found: " + string(e) }
func errNotFound(path string) error   { return notFoundError(path) }

type shortReadError struct{}

func (shortReadError) Error() string { return "short read" }

var errShortRead = shortReadError{}

// buildHeaderFile assembles a complete in-memory header file: encoded
// header body, length-prefixed stripe index, length-prefixed footer.
func buildHeaderFile(t *testing.T, fh *riff.FileHeader, stripes []riff.StripeInformation, footer riff.FooterInfo) []byte {
	t.Helper()
	encodedHeader, err := header.Encode(fh)
	require.NoError(t, err)

	stripesBlock, err := stripeindex.EncodeStripes(stripes, fh.Types)
	require.NoError(t, err)

	footerBlock, err := stripeindex.EncodeFooter(footer)
	require.NoError(t, err)

	var out bytes.Buffer
	out.Write(encodedHeader)
	writeLenPrefixed(&out, stripesBlock)
	writeLenPrefixed(&out, footerBlock)
	return out.Bytes()
}

func writeLenPrefixed(w *bytes.Buffer, block []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(block)))
	w.Write(lenBuf[:])
	w.Write(block)
}

func buildSessionTypes(t *testing.T) *riff.TypeDescription {
	t.Helper()
	schema := []riff.TypeSpec{
		{Name: "id", DataType: riff.TypeInt},
		{Name: "name", DataType: riff.TypeString},
	}
	td, err := riff.NewTypeDescription(schema, []string{"id"})
	require.NoError(t, err)
	return td
}

func TestReader_OpenReadFileInfoPrepareRead(t *testing.T) {
	types := buildSessionTypes(t)
	fh := &riff.FileHeader{Types: types, Properties: map[string]string{"k": "v"}}

	idStats := riff.NewStatistics(riff.TypeInt)
	idStats.Min, idStats.Max, idStats.Empty = riff.NewIntLiteral(1), riff.NewIntLiteral(10), false
	stripes := []riff.StripeInformation{
		{ID: 0, Offset: 0, Length: 4, Stats: []riff.Statistics{idStats}},
	}
	footer := riff.FooterInfo{NumRows: 100, AggregateStats: []riff.Statistics{idStats}}

	fs := newMemFileSystem()
	fs.files["/f.riff"] = buildHeaderFile(t, fh, stripes, footer)
	fs.files["/f.riff.data"] = []byte{0xDE, 0xAD, 0xBE, 0xEF}

	r, err := Open(fs, "/f.riff", nil)
	require.NoError(t, err)

	require.NoError(t, r.ReadFileInfo(true))
	require.Equal(t, int64(100), r.Footer().NumRows)
	require.True(t, riff.EqualFileHeaders(fh, r.Header()))

	it, err := r.PrepareRead(riff.Eq("id", riff.NewIntLiteral(5)))
	require.NoError(t, err)

	_, hasRow, err := it.Next()
	require.NoError(t, err)
	require.False(t, hasRow) // no decoder installed, stripe traversal just drains

	require.NoError(t, it.Close())
}

func TestReader_WrongStateOrder(t *testing.T) {
	types := buildSessionTypes(t)
	fh := &riff.FileHeader{Types: types}
	fs := newMemFileSystem()
	fs.files["/f.riff"] = buildHeaderFile(t, fh, nil, riff.FooterInfo{})

	r, err := Open(fs, "/f.riff", nil)
	require.NoError(t, err)

	_, err = r.PrepareRead(nil)
	require.Error(t, err)
	require.True(t, riff.IsErrorType(err, riff.ErrorTypeStateViolation))
}

func TestReader_MagicMismatchPropagates(t *testing.T) {
	types := buildSessionTypes(t)
	fh := &riff.FileHeader{Types: types}
	fs := newMemFileSystem()
	data := buildHeaderFile(t, fh, nil, riff.FooterInfo{})
	data[0] ^= 0xFF
	fs.files["/f.riff"] = data

	r, err := Open(fs, "/f.riff", nil)
	require.NoError(t, err)

	err = r.ReadFileInfo(false)
	require.Error(t, err)
	require.True(t, riff.IsErrorType(err, riff.ErrorTypeCorruptHeader))
}
