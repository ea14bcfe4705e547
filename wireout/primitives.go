package wireout

import "github.com/wirepb/wirepb/wire"

// WriteTag writes the tag for (number, typ): (number<<3)|typ, varint-encoded.
func (e *Encoder) WriteTag(number wire.Number, typ wire.Type) error {
	return e.append(wire.AppendTag(nil, number, typ))
}

// WriteRawTag writes pre-computed tag bytes verbatim, for generated code
// that has already folded the tag encoding into a constant (§4.4).
func (e *Encoder) WriteRawTag(b ...byte) error {
	return e.append(b)
}

// WriteVarint writes x as a base-128 varint: the wire representation of
// int32, int64, uint32, uint64, bool, and enum fields.
func (e *Encoder) WriteVarint(x uint64) error {
	return e.append(wire.AppendVarint(nil, x))
}

// WriteInt32 writes a signed 32-bit value using the plain (non-zigzag)
// varint encoding.
func (e *Encoder) WriteInt32(x int32) error { return e.WriteVarint(uint64(uint32(x))) }

// WriteInt64 writes a signed 64-bit value using the plain varint encoding.
// Negative values are sign-extended to the full 10-byte varint, matching
// canonical int64 field semantics.
func (e *Encoder) WriteInt64(x int64) error { return e.WriteVarint(uint64(x)) }

// WriteUInt32 writes an unsigned 32-bit varint.
func (e *Encoder) WriteUInt32(x uint32) error { return e.WriteVarint(uint64(x)) }

// WriteUInt64 writes an unsigned 64-bit varint.
func (e *Encoder) WriteUInt64(x uint64) error { return e.WriteVarint(x) }

// WriteSInt32 writes a zig-zag encoded signed 32-bit value.
func (e *Encoder) WriteSInt32(x int32) error { return e.WriteVarint(uint64(wire.EncodeZigZag32(x))) }

// WriteSInt64 writes a zig-zag encoded signed 64-bit value.
func (e *Encoder) WriteSInt64(x int64) error { return e.WriteVarint(wire.EncodeZigZag64(x)) }

// WriteBool writes a boolean as a single-byte varint, 0 or 1.
func (e *Encoder) WriteBool(b bool) error {
	if b {
		return e.WriteVarint(1)
	}
	return e.WriteVarint(0)
}

// WriteEnum writes an enum value using the plain varint encoding, same as
// int32.
func (e *Encoder) WriteEnum(x int32) error { return e.WriteInt32(x) }

// WriteFixed32 writes a little-endian 32-bit unsigned integer: the wire
// representation of fixed32 and sfixed32 (after re-casting) fields.
func (e *Encoder) WriteFixed32(x uint32) error { return e.append(wire.AppendFixed32(nil, x)) }

// WriteFixed64 writes a little-endian 64-bit unsigned integer.
func (e *Encoder) WriteFixed64(x uint64) error { return e.append(wire.AppendFixed64(nil, x)) }

// WriteSFixed32 writes a signed 32-bit value re-cast to its fixed32 bit
// pattern.
func (e *Encoder) WriteSFixed32(x int32) error { return e.WriteFixed32(uint32(x)) }

// WriteSFixed64 writes a signed 64-bit value re-cast to its fixed64 bit
// pattern.
func (e *Encoder) WriteSFixed64(x int64) error { return e.WriteFixed64(uint64(x)) }

// WriteFloat writes a float32 as its fixed32 bit pattern.
func (e *Encoder) WriteFloat(f float32) error { return e.WriteFixed32(wire.Float32Bits(f)) }

// WriteDouble writes a float64 as its fixed64 bit pattern.
func (e *Encoder) WriteDouble(f float64) error { return e.WriteFixed64(wire.Float64Bits(f)) }

// WriteString writes a length-prefixed UTF-8 string.
func (e *Encoder) WriteString(s string) error { return e.append(wire.AppendString(nil, s)) }

// WriteBytes writes a length-prefixed opaque byte payload.
func (e *Encoder) WriteBytes(b []byte) error { return e.append(wire.AppendBytes(nil, b)) }

// WriteLength writes a bare varint length prefix, for callers that append
// the payload bytes themselves (e.g. a nested message whose size was
// precomputed via ComputeMessageSize).
func (e *Encoder) WriteLength(length int) error { return e.append(wire.AppendLength(nil, length)) }

// WriteMessage writes a length-prefixed nested message whose bytes have
// already been marshaled by the caller (dispatch's encode walk, or a
// MessageType-driven recursive call).
func (e *Encoder) WriteMessage(encoded []byte) error { return e.append(wire.AppendBytes(nil, encoded)) }

// WritePackedVarint writes a length-prefixed sequence of plain varints, the
// packed encoding of repeated int32/int64/uint32/uint64/bool/enum fields.
func (e *Encoder) WritePackedVarint(values []uint64) error {
	var payload []byte
	for _, v := range values {
		payload = wire.AppendVarint(payload, v)
	}
	return e.WriteBytes(payload)
}

// WritePackedFixed32 writes a length-prefixed sequence of fixed32 values,
// the packed encoding of repeated fixed32/sfixed32/float fields.
func (e *Encoder) WritePackedFixed32(values []uint32) error {
	var payload []byte
	for _, v := range values {
		payload = wire.AppendFixed32(payload, v)
	}
	return e.WriteBytes(payload)
}

// WritePackedFixed64 writes a length-prefixed sequence of fixed64 values,
// the packed encoding of repeated fixed64/sfixed64/double fields.
func (e *Encoder) WritePackedFixed64(values []uint64) error {
	var payload []byte
	for _, v := range values {
		payload = wire.AppendFixed64(payload, v)
	}
	return e.WriteBytes(payload)
}
