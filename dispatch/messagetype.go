// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch implements the reflective message consumer (§4.3): it
// drives a field-by-field decode loop over a cursor.Decoder, dispatching
// each field by wire type and declared value type to a caller-supplied
// MessageType descriptor. It also implements the symmetric encode walk
// (Marshal) that serializes a caller's message back to bytes through a
// wireout.Encoder.
//
// dispatch knows nothing about concrete Go message types; it consumes the
// MessageType capability interface and produces opaque message values
// through it. Code generation, schema compilation, and reflection
// descriptors are external collaborators, not part of this package.
package dispatch

import "github.com/wirepb/wirepb/wire"

// FieldInfo describes how the dispatcher should treat one field number: its
// declared logical type, and (only when ValueType is Message) the
// descriptor of the nested message type.
type FieldInfo struct {
	ValueType   wire.ValueType
	MessageType MessageType // non-nil iff ValueType == wire.MessageValueType
	Repeated    bool        // true for repeated scalar/message fields
}

// IsUnknown reports whether this FieldInfo represents an undeclared field
// (i.e. "skip this field's bytes per its wire type").
func (fi FieldInfo) IsUnknown() bool { return fi.ValueType == wire.Unknown }

// MessageType is the external capability a caller supplies to decode or
// encode one kind of message (§6.3). A single MessageType value may be
// shared across many concurrent Decoders/Encoders — it is read-only during
// parsing — and may participate in reference cycles through nested-message
// FieldInfo.MessageType links, since it is looked up by handle rather than
// owned or cloned.
type MessageType interface {
	// NewMessage produces a fresh, mutable message object.
	NewMessage() any

	// FieldByNumber returns the declared value type (and, for Message
	// fields, the nested MessageType) for field number num. It returns a FieldInfo with
	// ValueType == wire.Unknown for tags the message type does not
	// declare.
	FieldByNumber(num wire.Number) FieldInfo

	// ConsumeField delivers a decoded value to message for the given field
	// number. The dynamic type of value is one of: uint64, int64, uint32,
	// int32, float32, float64, bool, string, []byte, or the message type
	// returned by a nested MessageType's NewMessage/CompleteMessage — its
	// static shape always matches FieldByNumber(num).ValueType.
	ConsumeField(message any, num wire.Number, value any)

	// CompleteMessage finalizes message (freezing, post-processing,
	// defaulting) and returns the caller-visible object.
	CompleteMessage(message any) any

	// IgnoreUnknown reports whether fields with no FieldInfo entry should
	// be silently consumed and discarded (true) or merely consumed with
	// the descriptor given a chance to record them via RecordUnknown
	// (false).
	IgnoreUnknown() bool
}

// UnknownRecorder is an optional capability a MessageType may additionally
// implement to receive the raw encoded bytes (tag + value) of fields it did
// not declare, when IgnoreUnknown() is false. If a MessageType does not
// implement UnknownRecorder, unknown fields are simply consumed and
// discarded regardless of IgnoreUnknown.
type UnknownRecorder interface {
	RecordUnknown(message any, num wire.Number, raw []byte)
}
