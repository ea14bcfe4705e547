// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proto is the top-level convenience API over wire/cursor/dispatch/
// wireout: a Buffer type for contiguous-bytes workflows, and Marshal/
// Unmarshal free functions, in the shape of the teacher's own proto.Buffer
// and proto.Marshal/Unmarshal, rebuilt against this module's
// dispatch.MessageType capability instead of generated message types.
package proto

import (
	"github.com/wirepb/wirepb/cursor"
	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/wireout"
)

// Buffer is a reusable encode/decode workspace over a contiguous byte
// slice, mirroring the teacher's proto.Buffer: construct once, call
// Marshal/Unmarshal repeatedly, and reuse the returned buffer across
// messages to amortize allocation.
type Buffer struct {
	buf []byte

	decOpts cursor.Options
}

// NewBuffer creates a Buffer, taking ownership of e as its initial contents
// (nil is fine and starts empty).
func NewBuffer(e []byte) *Buffer {
	return &Buffer{buf: e}
}

// Reset discards the Buffer's contents without releasing its backing array.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// SetBuf replaces the Buffer's contents with s.
func (b *Buffer) SetBuf(s []byte) { b.buf = s }

// Bytes returns the Buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.buf }

// SetDecodeOptions configures the cursor.Options used by subsequent
// Unmarshal calls (recursion/size limits).
func (b *Buffer) SetDecodeOptions(opts cursor.Options) { b.decOpts = opts }

// Marshal appends the wire encoding of message (as described by mt) to the
// Buffer's contents.
func (b *Buffer) Marshal(mt dispatch.MessageType, message any) error {
	enc := wireout.ContinueBuffer(b.buf)
	if err := dispatch.Marshal(enc, mt, message); err != nil {
		return err
	}
	b.buf = enc.Bytes()
	return nil
}

// Unmarshal decodes a single message (as described by mt) from the
// Buffer's entire current contents.
func (b *Buffer) Unmarshal(mt dispatch.MessageType) (any, error) {
	dec := cursor.FromBytes(b.buf, b.decOpts)
	return dispatch.Unmarshal(dec, mt)
}

// UnmarshalDelimited decodes one length-prefixed message (as described by
// mt) from the front of the Buffer's contents and advances past it,
// leaving the remainder of b.buf available for a subsequent
// UnmarshalDelimited call — the inverse of writing a sequence of messages
// with MarshalDelimited.
func (b *Buffer) UnmarshalDelimited(mt dispatch.MessageType) (any, error) {
	dec := cursor.FromBytes(b.buf, b.decOpts)
	length, err := dec.ReadLength()
	if err != nil {
		return nil, err
	}
	prior, err := dec.PushLimit(length)
	if err != nil {
		return nil, err
	}
	msg, err := dispatch.Unmarshal(dec, mt)
	dec.PopLimit(prior)
	if err != nil {
		return nil, err
	}
	b.buf = b.buf[dec.AbsoluteOffset():]
	return msg, nil
}

// MarshalDelimited appends message (as described by mt) to the Buffer's
// contents, prefixed with its encoded length, so that a sequence of
// MarshalDelimited calls can later be read back with UnmarshalDelimited.
func (b *Buffer) MarshalDelimited(mt dispatch.MessageType, message any) error {
	encoded, err := Marshal(mt, message)
	if err != nil {
		return err
	}
	enc := wireout.ContinueBuffer(b.buf)
	if err := enc.WriteMessage(encoded); err != nil {
		return err
	}
	b.buf = enc.Bytes()
	return nil
}

// ExpectEOF reports werrors.ErrMoreDataAvailable if the Buffer still holds
// unconsumed bytes — for a caller that has read a known number of
// UnmarshalDelimited messages and wants to confirm none remain.
func (b *Buffer) ExpectEOF() error {
	return cursor.FromBytes(b.buf, b.decOpts).ExpectEOF()
}
