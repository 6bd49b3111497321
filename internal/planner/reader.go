// Package planner implements the file reader planner: header/stripe-index
// loading, predicate-driven stripe evaluation, and the surviving-stripe
// row iterator. It is the component every other package in this module
// exists to support.
package planner

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/lychee-technology/riff"
	"github.com/lychee-technology/riff/internal"
	"github.com/lychee-technology/riff/internal/header"
	"github.com/lychee-technology/riff/internal/stripeindex"
	"github.com/lychee-technology/riff/internal/stripeset"
	"github.com/lychee-technology/riff/internal/stripestream"
)

// Reader is a single read session over one logical Riff file (a header
// file at path and its companion data file at path+".data"). It is not
// safe for concurrent use by multiple goroutines; open one Reader per
// consumer.
type Reader struct {
	fs         FileSystem
	headerPath string
	dataPath   string
	conf       *riff.Config
	state      riff.SessionState
	sessionID  uuid.UUID

	header  *riff.FileHeader
	stripes []riff.StripeInformation
	footer  *riff.FooterInfo
}

// Open constructs a Reader bound to path (the header file) and
// path+".data" (the data file), applying conf's IO settings. Passing nil
// conf uses riff.DefaultConfig(). Open performs no I/O.
func Open(fs FileSystem, path string, conf *riff.Config) (*Reader, error) {
	if conf == nil {
		conf = riff.DefaultConfig()
	}
	conf.IO.BufferSize = riff.ClampBufferSize(conf.IO.BufferSize)

	r := &Reader{
		fs:         fs,
		headerPath: path,
		dataPath:   path + ".data",
		conf:       conf,
		state:      riff.SessionOpened,
		sessionID:  riff.NewSessionID(),
	}
	riff.Logger().Debugw("riff reader opened", "session", internal.ShortSessionID(r.sessionID), "header_path", path)
	return r, nil
}

// ReadFileInfo parses the header (always) and the footer (when
// readFooter is true), and the trailing stripe index block. It requires
// the session to be in the Opened state and transitions it to
// HeaderRead on success; any failure transitions the session to Closed.
func (r *Reader) ReadFileInfo(readFooter bool) error {
	if err := r.requireState(riff.SessionOpened); err != nil {
		return err
	}

	data, err := r.fs.ReadFile(r.headerPath)
	if err != nil {
		r.fail()
		return riff.NewIOError("reading header file", err)
	}

	fh, rest, err := decodeHeaderFile(data, r.conf.IO.HeaderMaxBodyBytes)
	if err != nil {
		r.fail()
		return err
	}
	r.header = fh

	stripesBlock, rest, err := readLengthPrefixed(rest)
	if err != nil {
		r.fail()
		return riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated stripe index block")
	}
	stripes, err := stripeindex.DecodeStripes(stripesBlock, fh.Types)
	if err != nil {
		r.fail()
		return err
	}
	r.stripes = stripes

	if readFooter {
		footerBlock, _, err := readLengthPrefixed(rest)
		if err != nil {
			r.fail()
			return riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated footer block")
		}
		fi, err := stripeindex.DecodeFooter(footerBlock, fh.Types)
		if err != nil {
			r.fail()
			return err
		}
		r.footer = &fi
	}

	r.state = riff.SessionHeaderRead
	riff.Logger().Debugw("riff header read", "session", internal.ShortSessionID(r.sessionID), "num_stripes", len(r.stripes))
	return nil
}

// Header returns the parsed FileHeader; valid once ReadFileInfo has run.
func (r *Reader) Header() *riff.FileHeader { return r.header }

// Footer returns the parsed FooterInfo, or nil if ReadFileInfo was
// called with readFooter=false.
func (r *Reader) Footer() *riff.FooterInfo { return r.footer }

// PrepareRead builds a PredicateState from pred (nil means "no
// predicate"), evaluates every stripe against it via EvaluateStripes, and
// returns an iterator over the surviving stripes' rows. Requires the
// session to be in the HeaderRead state; transitions it to Planned.
func (r *Reader) PrepareRead(pred riff.Node) (*RowIterator, error) {
	if err := r.requireState(riff.SessionHeaderRead); err != nil {
		return nil, err
	}

	var state *riff.PredicateState
	if pred != nil && r.conf.Stripe.FilterPushdownEnabled {
		ps, err := riff.NewPredicateState(pred, r.header.Types)
		if err != nil {
			r.fail()
			return nil, err
		}
		state = ps
	}

	survivors := EvaluateStripes(r.stripes, state)

	codec, err := stripestream.Lookup(r.conf.IO.CompressionCodec)
	if err != nil {
		r.fail()
		return nil, err
	}

	skipped := len(r.stripes) - len(survivors)
	if len(r.stripes) > 0 {
		riff.EmitPushdownEfficiency(r.headerPath, float64(skipped)/float64(len(r.stripes)))
	}

	r.state = riff.SessionPlanned
	riff.Logger().Infow("riff stripes planned", "session", internal.ShortSessionID(r.sessionID),
		"total_stripes", len(r.stripes), "surviving_stripes", len(survivors))

	return &RowIterator{
		reader:    r,
		state:     state,
		stripes:   survivors,
		codec:     codec,
		stripeIdx: -1,
	}, nil
}

// Close releases any resources held by the session and marks it Closed.
// Closing an already-closed session is a no-op.
func (r *Reader) Close() error {
	r.state = riff.SessionClosed
	return nil
}

func (r *Reader) fail() { r.state = riff.SessionClosed }

func (r *Reader) requireState(want riff.SessionState) error {
	if r.state != want {
		err := riff.NewStateViolationError(r.state, want)
		r.fail()
		return err
	}
	return nil
}

// EvaluateStripes is the central planner function: it sorts stripes by
// offset, then — unless state is nil — retains only stripes that
// statistics and column-filter pushdown cannot prove are free of matching
// rows. Ordering is preserved; the result is always a subsequence of the
// offset-sorted input.
func EvaluateStripes(stripes []riff.StripeInformation, state *riff.PredicateState) []riff.StripeInformation {
	sorted := append([]riff.StripeInformation(nil), stripes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	if state == nil {
		return sorted
	}

	// Two independently computed survivor sets — stats pushdown and
	// filter pushdown — intersected to get the final candidate set.
	statsSurvivors := stripeset.Full(len(sorted))
	filterSurvivors := stripeset.Full(len(sorted))
	for i, s := range sorted {
		ord := uint32(i)
		if s.HasStats() && !state.EvaluateStats(s.Stats) {
			statsSurvivors.Remove(ord)
		}
		if s.HasFilter() && !state.EvaluateFilters(s.Filter) {
			filterSurvivors.Remove(ord)
		}
	}
	statsSurvivors.And(filterSurvivors)

	out := make([]riff.StripeInformation, 0, statsSurvivors.Len())
	for _, ord := range statsSurvivors.SortedSlice() {
		out = append(out, sorted[ord])
	}
	return out
}

// AssertBytes compares expected and actual byte slices, returning a
// descriptive error if they differ. Message form:
// "{context}: {expected?} != {actual?}" where each operand renders as
// "null" when nil or "[b0, b1, ...]" with decimal byte values otherwise.
func AssertBytes(expected, actual []byte, context string) error {
	if bytesEqual(expected, actual) {
		return nil
	}
	return fmt.Errorf("%s: %s != %s", context, renderBytes(expected), renderBytes(actual))
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func renderBytes(b []byte) string {
	if b == nil {
		return "null"
	}
	out := "["
	for i, v := range b {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", v)
	}
	return out + "]"
}

func decodeHeaderFile(data []byte, maxBodyBytes int) (fh *riff.FileHeader, rest []byte, err error) {
	if len(data) < 8 {
		return nil, nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "header shorter than fixed prefix")
	}
	bodyLen := binary.BigEndian.Uint32(data[4:8])
	if maxBodyBytes > 0 && int(bodyLen) > maxBodyBytes {
		return nil, nil, riff.NewCorruptHeaderError(riff.ErrCodeBodyTooLarge,
			fmt.Sprintf("body_length %d exceeds cap %d", bodyLen, maxBodyBytes))
	}
	total := 8 + int(bodyLen)
	if len(data) < total {
		return nil, nil, riff.NewCorruptHeaderError(riff.ErrCodeTruncatedBody, "truncated header body")
	}
	fh, err = header.Decode(data[:total], maxBodyBytes)
	if err != nil {
		return nil, nil, err
	}
	return fh, data[total:], nil
}

func readLengthPrefixed(data []byte) (block, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	n := int(binary.BigEndian.Uint32(data[:4]))
	if n < 0 || len(data) < 4+n {
		return nil, nil, fmt.Errorf("truncated block")
	}
	return data[4 : 4+n], data[4+n:], nil
}
