package wireout

import "github.com/wirepb/wirepb/wire"

// Wrapped writers (§9): a well-known wrapper type (google.protobuf.Int32Value
// and friends) is, at the wire level, a length-prefixed nested message whose
// only field is the primitive at field number 1. These helpers encode that
// shape directly, without requiring a generated message type for the
// wrapper itself — purely a convenience built on the generic message path.

func wrappedVarint(v uint64) []byte {
	inner := wire.AppendTag(nil, 1, wire.VarintType)
	return wire.AppendVarint(inner, v)
}

func wrappedFixed32(v uint32) []byte {
	inner := wire.AppendTag(nil, 1, wire.Fixed32Type)
	return wire.AppendFixed32(inner, v)
}

func wrappedFixed64(v uint64) []byte {
	inner := wire.AppendTag(nil, 1, wire.Fixed64Type)
	return wire.AppendFixed64(inner, v)
}

func wrappedBytes(b []byte) []byte {
	inner := wire.AppendTag(nil, 1, wire.BytesType)
	return wire.AppendBytes(inner, b)
}

// WriteWrappedInt32 writes the wire shape of a google.protobuf.Int32Value.
func (e *Encoder) WriteWrappedInt32(x int32) error {
	return e.WriteMessage(wrappedVarint(uint64(uint32(x))))
}

// WriteWrappedInt64 writes the wire shape of a google.protobuf.Int64Value.
func (e *Encoder) WriteWrappedInt64(x int64) error {
	return e.WriteMessage(wrappedVarint(uint64(x)))
}

// WriteWrappedUInt32 writes the wire shape of a google.protobuf.UInt32Value.
func (e *Encoder) WriteWrappedUInt32(x uint32) error {
	return e.WriteMessage(wrappedVarint(uint64(x)))
}

// WriteWrappedUInt64 writes the wire shape of a google.protobuf.UInt64Value.
func (e *Encoder) WriteWrappedUInt64(x uint64) error {
	return e.WriteMessage(wrappedVarint(x))
}

// WriteWrappedBool writes the wire shape of a google.protobuf.BoolValue.
func (e *Encoder) WriteWrappedBool(b bool) error {
	var v uint64
	if b {
		v = 1
	}
	return e.WriteMessage(wrappedVarint(v))
}

// WriteWrappedFloat writes the wire shape of a google.protobuf.FloatValue.
func (e *Encoder) WriteWrappedFloat(f float32) error {
	return e.WriteMessage(wrappedFixed32(wire.Float32Bits(f)))
}

// WriteWrappedDouble writes the wire shape of a google.protobuf.DoubleValue.
func (e *Encoder) WriteWrappedDouble(f float64) error {
	return e.WriteMessage(wrappedFixed64(wire.Float64Bits(f)))
}

// WriteWrappedString writes the wire shape of a google.protobuf.StringValue.
func (e *Encoder) WriteWrappedString(s string) error {
	return e.WriteMessage(wrappedBytes([]byte(s)))
}

// WriteWrappedBytes writes the wire shape of a google.protobuf.BytesValue.
func (e *Encoder) WriteWrappedBytes(b []byte) error {
	return e.WriteMessage(wrappedBytes(b))
}

// The decode-side counterparts (ReadWrappedInt32 and friends) live in
// package dispatch: decoding a wrapper payload means running the generic
// dispatch loop one level deeper against a minimal single-field
// MessageType, which wireout has no access to without importing dispatch
// (which already imports wireout for Marshal).
