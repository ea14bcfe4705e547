// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cursor implements the buffered input adaptor (§4.2 of the wire
// format design): a single cursor abstraction over a contiguous byte range,
// a sequence of discontiguous byte ranges, or a pull-based byte stream,
// enforcing size and recursion limits uniformly across all three.
//
// A Decoder is single-owner: it is not safe for concurrent use by more than
// one goroutine, matching the teacher's proto.Buffer.
package cursor

import (
	"context"
	"io"
	"math"

	"github.com/google/uuid"

	"github.com/wirepb/wirepb/werrors"
)

// DefaultRecursionLimit bounds embedded-message and group nesting when
// Options.RecursionLimit is zero.
const DefaultRecursionLimit = 64

// DefaultSizeLimit bounds total bytes read from a streaming source when
// Options.SizeLimit is zero.
const DefaultSizeLimit = math.MaxInt32

// DefaultScratchSize is the recommended scratch buffer size for the
// streaming adaptor.
const DefaultScratchSize = 4096

// Options configures a Decoder. The zero value selects the defaults
// documented on DefaultRecursionLimit and DefaultSizeLimit.
type Options struct {
	// RecursionLimit bounds embedded-message and group nesting depth.
	RecursionLimit int
	// SizeLimit bounds the total number of bytes a streaming Decoder will
	// pull from its source before failing with ErrSizeLimitExceeded.
	SizeLimit int
	// ScratchSize overrides DefaultScratchSize for streaming decoders.
	ScratchSize int
}

func (o Options) recursionLimit() int {
	if o.RecursionLimit > 0 {
		return o.RecursionLimit
	}
	return DefaultRecursionLimit
}

func (o Options) sizeLimit() int {
	if o.SizeLimit > 0 {
		return o.SizeLimit
	}
	return DefaultSizeLimit
}

func (o Options) scratchSize() int {
	if o.ScratchSize > 0 {
		return o.ScratchSize
	}
	return DefaultScratchSize
}

// refiller is supplied by each of the three constructors and knows how to
// bring more bytes into buf when the current window is exhausted. It
// returns ok=false only when the underlying source is genuinely exhausted
// (not merely between segments).
type refiller func(d *Decoder) (ok bool, err error)

// Decoder is the cursor abstraction of §3/§4.2: a logical position carrying
// bytes-remaining, an absolute offset, a recursion counter, and a limit
// stack, over one of three concrete input shapes.
type Decoder struct {
	ID uuid.UUID

	buf []byte // current contiguous window
	pos int    // read position within buf
	end int    // exclusive end of buf usable by the active limit (<= len(buf))

	bytesRetired int64 // bytes belonging to segments/windows already advanced past
	totalRead    int64 // cumulative bytes ever pulled from the source (streaming)

	limits []int64 // LIFO stack of absolute-offset ceilings

	recursionDepth int
	recursionLimit int
	sizeLimit      int

	refill refiller
	atEOF  bool // true once refill has reported genuine exhaustion

	ctx context.Context
}

func newDecoder(opts Options) *Decoder {
	return &Decoder{
		ID:             uuid.New(),
		recursionLimit: opts.recursionLimit(),
		sizeLimit:      opts.sizeLimit(),
		ctx:            context.Background(),
	}
}

// FromBytes creates a Decoder over a single contiguous byte range. No
// refilling ever occurs.
func FromBytes(b []byte, opts Options) *Decoder {
	d := newDecoder(opts)
	d.buf = b
	d.end = len(b)
	d.atEOF = true // nothing more will ever arrive
	d.totalRead = int64(len(b))
	return d
}

// FromSegments creates a Decoder over an ordered sequence of discontiguous
// byte ranges. Transitioning between segments is the only refill event;
// each segment is itself contiguous.
func FromSegments(segments [][]byte, opts Options) *Decoder {
	d := newDecoder(opts)
	idx := 0
	d.refill = func(d *Decoder) (bool, error) {
		// Skip any empty segments.
		for idx < len(segments) && len(segments[idx]) == 0 {
			idx++
		}
		if idx >= len(segments) {
			return false, nil
		}
		d.bytesRetired += int64(len(d.buf))
		d.buf = segments[idx]
		d.pos = 0
		d.end = len(d.buf)
		d.totalRead += int64(len(d.buf))
		idx++
		return true, nil
	}
	return d
}

// FromReader creates a Decoder over a pull-based byte stream, filling an
// internal scratch buffer on demand. ctx is checked before each refill, and
// once it is done the refill fails with ctx.Err(); a read already blocked in
// r is not interrupted. A nil ctx is treated as context.Background().
func FromReader(ctx context.Context, r io.Reader, opts Options) *Decoder {
	d := newDecoder(opts)
	if ctx != nil {
		d.ctx = ctx
	}
	scratch := make([]byte, opts.scratchSize())
	d.refill = func(d *Decoder) (bool, error) {
		select {
		case <-d.ctx.Done():
			return false, d.ctx.Err()
		default:
		}
		d.bytesRetired += int64(len(d.buf))
		n, err := r.Read(scratch)
		if n > 0 {
			d.buf = scratch[:n]
			d.pos = 0
			d.end = n
			d.totalRead += int64(n)
			if d.totalRead > int64(d.sizeLimit) {
				return false, werrors.ErrSizeLimitExceeded
			}
			return true, nil
		}
		d.buf = nil
		d.pos = 0
		d.end = 0
		if err == io.EOF || err == nil {
			return false, nil
		}
		return false, err
	}
	return d
}

// AbsoluteOffset returns the cursor's position relative to the start of the
// whole input, used for error reporting and limit accounting.
func (d *Decoder) AbsoluteOffset() int64 {
	return d.bytesRetired + int64(d.pos)
}

// activeLimit returns the current limit ceiling, or -1 if no limit is
// pushed (meaning "read until end of input").
func (d *Decoder) activeLimit() int64 {
	if len(d.limits) == 0 {
		return -1
	}
	return d.limits[len(d.limits)-1]
}

// PushLimit records the current absolute position plus n as a new ceiling
// and returns the prior top of stack (for PopLimit). It fails if the new
// ceiling would exceed the currently active one, or overflow.
func (d *Decoder) PushLimit(n int) (prior int64, err error) {
	if n < 0 {
		return 0, werrors.ErrNegativeSize
	}
	newLimit := d.AbsoluteOffset() + int64(n)
	if newLimit < d.AbsoluteOffset() {
		return 0, werrors.ErrTruncatedMessage
	}
	if cur := d.activeLimit(); cur >= 0 && newLimit > cur {
		return 0, werrors.ErrTruncatedMessage
	}
	prior = d.activeLimit()
	d.limits = append(d.limits, newLimit)
	d.clampWindowToLimit()
	return prior, nil
}

// PopLimit restores the previous ceiling returned by the matching
// PushLimit. Scoped push/pop pairs must nest correctly; callers typically
// use a defer immediately after a successful PushLimit so the limit is
// released on every exit path, including error returns.
func (d *Decoder) PopLimit(prior int64) {
	if len(d.limits) > 0 {
		d.limits = d.limits[:len(d.limits)-1]
	}
	d.clampWindowToLimit()
}

// clampWindowToLimit shrinks the usable window (d.end) when the active
// limit falls inside the current buffer, so that fast-path reads never
// cross a limit boundary by accident.
func (d *Decoder) clampWindowToLimit() {
	lim := d.activeLimit()
	if lim < 0 {
		d.end = len(d.buf)
		return
	}
	windowEnd := lim - d.bytesRetired
	if windowEnd < 0 {
		windowEnd = 0
	}
	if windowEnd > int64(len(d.buf)) {
		windowEnd = int64(len(d.buf))
	}
	d.end = int(windowEnd)
}

// ReachedLimit reports whether the cursor's absolute offset has reached (or
// passed) the active limit. With no limit pushed, it is equivalent to
// IsAtEnd.
func (d *Decoder) ReachedLimit() bool {
	lim := d.activeLimit()
	if lim < 0 {
		atEnd, _ := d.IsAtEnd()
		return atEnd
	}
	return d.AbsoluteOffset() >= lim
}

// IsAtEnd reports whether there are no more bytes to read: the current
// window is exhausted and (for streaming/segmented sources) refilling
// reports genuine exhaustion.
func (d *Decoder) IsAtEnd() (bool, error) {
	if d.pos < d.end {
		return false, nil
	}
	return d.atEndSlow()
}

func (d *Decoder) atEndSlow() (bool, error) {
	for d.pos >= d.end {
		if d.atEOF {
			return true, nil
		}
		ok, err := d.doRefill()
		if err != nil {
			return false, err
		}
		if !ok {
			d.atEOF = true
			return true, nil
		}
	}
	return false, nil
}

// doRefill invokes the configured refiller, if any, and folds the result
// into atEOF bookkeeping. A nil refiller (contiguous source) always reports
// exhaustion.
func (d *Decoder) doRefill() (bool, error) {
	if d.refill == nil {
		d.atEOF = true
		return false, nil
	}
	ok, err := d.refill(d)
	if err != nil {
		return false, err
	}
	if !ok {
		d.atEOF = true
		return false, nil
	}
	d.clampWindowToLimit()
	return true, nil
}

// EnterRecursion increments the recursion depth, failing if doing so would
// exceed the configured limit. Callers must pair every successful call with
// ExitRecursion on every exit path.
func (d *Decoder) EnterRecursion() error {
	if d.recursionDepth >= d.recursionLimit {
		return werrors.ErrRecursionLimitExceeded
	}
	d.recursionDepth++
	return nil
}

// ExitRecursion decrements the recursion depth.
func (d *Decoder) ExitRecursion() {
	if d.recursionDepth > 0 {
		d.recursionDepth--
	}
}

// RecursionDepth reports the current recursion depth (for diagnostics).
func (d *Decoder) RecursionDepth() int { return d.recursionDepth }

// ExpectEOF reports werrors.ErrMoreDataAvailable if the decoder has not
// reached the end of its input (subject to any active limit), for callers
// that expect to have already consumed everything of interest — e.g. after
// reading a known sequence of delimited messages off a Decoder that spans
// more than one of them.
func (d *Decoder) ExpectEOF() error {
	atEnd, err := d.IsAtEnd()
	if err != nil {
		return err
	}
	if !atEnd {
		return werrors.ErrMoreDataAvailable
	}
	return nil
}
