// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wireout implements the output codec (§4.4): the symmetric
// counterpart of cursor, producing the wire encoding over one of three
// output shapes — a fixed-capacity contiguous buffer that reports
// ErrOutOfSpace on overflow, a growable buffer-writer sink that reallocates
// as needed, and a push stream that flushes a scratch buffer to an
// io.Writer whenever it fills.
//
// Like cursor.Decoder, an Encoder is single-owner and not safe for
// concurrent use by more than one goroutine.
package wireout

import (
	"io"

	"github.com/google/uuid"

	"github.com/wirepb/wirepb/werrors"
)

// DefaultScratchSize is the recommended scratch buffer size for the
// push-stream sink.
const DefaultScratchSize = 4096

// Options configures an Encoder. The zero value selects DefaultScratchSize
// for streaming sinks.
type Options struct {
	// ScratchSize overrides DefaultScratchSize for the push-stream sink.
	ScratchSize int
}

func (o Options) scratchSize() int {
	if o.ScratchSize > 0 {
		return o.ScratchSize
	}
	return DefaultScratchSize
}

// flusher is supplied by ToWriter and invoked whenever the scratch buffer
// needs draining; it is nil for the buffer-based sinks.
type flusher func(e *Encoder, full []byte) error

// Encoder is the output half of the cursor abstraction: an append cursor
// over one of the three sink shapes.
type Encoder struct {
	ID uuid.UUID

	buf      []byte // growable sink: the accumulated output; fixed sink: the caller's backing array
	fixedCap int     // >0 for the fixed-capacity sink; 0 otherwise (no ceiling)
	fixed    bool

	flush flusher // non-nil for the push-stream sink
	w     io.Writer

	written int64 // cumulative bytes ever handed to the sink (all shapes)
}

func newEncoder() *Encoder {
	return &Encoder{ID: uuid.New()}
}

// ToBuffer creates an Encoder backed by a growable in-memory buffer. capHint
// preallocates capacity (0 is fine) and is never a ceiling.
func ToBuffer(capHint int) *Encoder {
	e := newEncoder()
	if capHint > 0 {
		e.buf = make([]byte, 0, capHint)
	}
	return e
}

// ContinueBuffer creates a growable-buffer Encoder that appends onto the end
// of existing rather than starting empty, for callers (like proto.Buffer)
// that reuse one accumulated byte slice across several Marshal calls.
func ContinueBuffer(existing []byte) *Encoder {
	e := newEncoder()
	e.buf = existing
	return e
}

// ToFixedBuffer creates an Encoder that writes into b in place and never
// grows it. Writes that would exceed cap(b) fail with ErrOutOfSpace and the
// Encoder's state is left as it was before the failing write.
func ToFixedBuffer(b []byte) *Encoder {
	e := newEncoder()
	e.buf = b[:0]
	e.fixedCap = cap(b)
	e.fixed = true
	return e
}

// ToWriter creates an Encoder that accumulates into a scratch buffer and
// flushes it to w whenever it fills, per §4.4's "push stream" shape.
func ToWriter(w io.Writer, opts Options) *Encoder {
	e := newEncoder()
	e.w = w
	e.buf = make([]byte, 0, opts.scratchSize())
	scratchCap := opts.scratchSize()
	e.flush = func(e *Encoder, full []byte) error {
		if _, err := w.Write(full); err != nil {
			return err
		}
		e.buf = e.buf[:0]
		if cap(e.buf) < scratchCap {
			e.buf = make([]byte, 0, scratchCap)
		}
		return nil
	}
	return e
}

// Bytes returns the accumulated output of a buffer-backed Encoder (ToBuffer
// or ToFixedBuffer). It is meaningless for a push-stream Encoder, whose
// bytes have already been handed to the underlying io.Writer.
func (e *Encoder) Bytes() []byte { return e.buf }

// Written reports the cumulative number of bytes ever appended to the sink,
// across all shapes.
func (e *Encoder) Written() int64 { return e.written }

// reserve ensures n more bytes can be appended, flushing a push-stream sink
// or failing a fixed-capacity sink as needed. It never touches a growable
// buffer sink, which simply grows on append.
func (e *Encoder) reserve(n int) error {
	if e.fixed {
		if len(e.buf)+n > e.fixedCap {
			return werrors.ErrOutOfSpace
		}
		return nil
	}
	if e.flush != nil && len(e.buf)+n > cap(e.buf) {
		if err := e.flush(e, e.buf); err != nil {
			return err
		}
	}
	return nil
}

// append is the single choke point every primitive writer in primitives.go
// funnels through: it enforces the fixed-capacity ceiling, triggers a
// push-stream flush when the scratch buffer would overflow, and otherwise
// grows the buffer sink freely.
func (e *Encoder) append(b []byte) error {
	if err := e.reserve(len(b)); err != nil {
		return err
	}
	e.buf = append(e.buf, b...)
	e.written += int64(len(b))
	return nil
}

// Flush drains any buffered bytes to the underlying io.Writer. It is a
// no-op for the buffer-backed sinks.
func (e *Encoder) Flush() error {
	if e.flush == nil || len(e.buf) == 0 {
		return nil
	}
	return e.flush(e, e.buf)
}
