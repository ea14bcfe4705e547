package wireout

import "github.com/wirepb/wirepb/wire"

// The Compute*Size family mirrors every writer in primitives.go, letting a
// caller precompute a nested message's length prefix before writing it,
// rather than backpatching a placeholder length after the fact (§4.4).
// dispatch.Marshal does not use them: it marshals each nested message into
// its own buffer and writes that with WriteMessage.

// ComputeTagSize returns the encoded size of a tag for number (the wire type
// does not affect tag size).
func ComputeTagSize(number wire.Number) int { return wire.SizeTag(number) }

// ComputeVarintSize returns the encoded size of a plain varint.
func ComputeVarintSize(x uint64) int { return wire.SizeVarint(x) }

// ComputeInt32Size returns the encoded size of a plain-varint int32.
func ComputeInt32Size(x int32) int { return wire.SizeVarint(uint64(uint32(x))) }

// ComputeInt64Size returns the encoded size of a plain-varint int64.
func ComputeInt64Size(x int64) int { return wire.SizeVarint(uint64(x)) }

// ComputeUInt32Size returns the encoded size of a uint32 varint.
func ComputeUInt32Size(x uint32) int { return wire.SizeVarint(uint64(x)) }

// ComputeUInt64Size returns the encoded size of a uint64 varint.
func ComputeUInt64Size(x uint64) int { return wire.SizeVarint(x) }

// ComputeSInt32Size returns the encoded size of a zig-zag sint32.
func ComputeSInt32Size(x int32) int { return wire.SizeVarint(uint64(wire.EncodeZigZag32(x))) }

// ComputeSInt64Size returns the encoded size of a zig-zag sint64.
func ComputeSInt64Size(x int64) int { return wire.SizeVarint(wire.EncodeZigZag64(x)) }

// ComputeBoolSize returns the encoded size of a bool: always 1.
func ComputeBoolSize(bool) int { return 1 }

// ComputeEnumSize returns the encoded size of an enum value, same as int32.
func ComputeEnumSize(x int32) int { return ComputeInt32Size(x) }

// ComputeFixed32Size returns the encoded size of any fixed32-shaped value:
// always 4.
func ComputeFixed32Size() int { return 4 }

// ComputeFixed64Size returns the encoded size of any fixed64-shaped value:
// always 8.
func ComputeFixed64Size() int { return 8 }

// ComputeStringSize returns the encoded size (length prefix + bytes) of s.
func ComputeStringSize(s string) int { return wire.SizeBytes(len(s)) }

// ComputeBytesSize returns the encoded size (length prefix + bytes) of b.
func ComputeBytesSize(b []byte) int { return wire.SizeBytes(len(b)) }

// ComputeMessageSize returns the encoded size (length prefix + bytes) of an
// already-marshaled nested message.
func ComputeMessageSize(encoded []byte) int { return wire.SizeBytes(len(encoded)) }

// ComputePackedVarintSize returns the encoded size of a packed varint
// repeated field's payload, length prefix included.
func ComputePackedVarintSize(values []uint64) int {
	n := 0
	for _, v := range values {
		n += wire.SizeVarint(v)
	}
	return wire.SizeBytes(n)
}

// ComputePackedFixed32Size returns the encoded size of a packed fixed32
// repeated field's payload, length prefix included.
func ComputePackedFixed32Size(values []uint32) int {
	return wire.SizeBytes(4 * len(values))
}

// ComputePackedFixed64Size returns the encoded size of a packed fixed64
// repeated field's payload, length prefix included.
func ComputePackedFixed64Size(values []uint64) int {
	return wire.SizeBytes(8 * len(values))
}
