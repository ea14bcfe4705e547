package wire

import (
	"math"

	"github.com/wirepb/wirepb/werrors"
)

// ConsumeFixed32 decodes a little-endian 32-bit unsigned integer from the
// front of b. b must have at least 4 bytes.
func ConsumeFixed32(b []byte) (v uint32, n int, err error) {
	if len(b) < 4 {
		return 0, 0, werrors.ErrTruncatedMessage
	}
	_ = b[3]
	v = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return v, 4, nil
}

// ConsumeFixed64 decodes a little-endian 64-bit unsigned integer from the
// front of b. b must have at least 8 bytes.
func ConsumeFixed64(b []byte) (v uint64, n int, err error) {
	if len(b) < 8 {
		return 0, 0, werrors.ErrTruncatedMessage
	}
	_ = b[7]
	v = uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	return v, 8, nil
}

// AppendFixed32 appends the little-endian encoding of v to b.
func AppendFixed32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendFixed64 appends the little-endian encoding of v to b.
func AppendFixed64(b []byte, v uint64) []byte {
	return append(b,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// Float32FromBits reinterprets the bit pattern of a fixed32 as an IEEE-754
// float32, per §4.1's "pure bit re-interpretation" rule.
func Float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }

// Float32Bits is the inverse of Float32FromBits.
func Float32Bits(f float32) uint32 { return math.Float32bits(f) }

// Float64FromBits reinterprets the bit pattern of a fixed64 as an IEEE-754
// float64.
func Float64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }

// Float64Bits is the inverse of Float64FromBits.
func Float64Bits(f float64) uint64 { return math.Float64bits(f) }
