package wire

import "github.com/wirepb/wirepb/werrors"

// maxVarintBytes bounds the number of continuation bytes a 64-bit varint may
// use on the wire before it is considered malformed.
const maxVarintBytes = 10

// ConsumeVarint decodes a base-128 little-endian varint from the front of b.
// It returns the decoded value and the number of bytes consumed. If b does
// not hold a complete varint within 10 bytes, n is 0 and err is non-nil.
//
// This is the slow, fully-checked path: every iteration bounds-checks b. Call
// sites on a known-long buffer should prefer the unrolled fast paths in
// varint_fast.go.
func ConsumeVarint(b []byte) (v uint64, n int, err error) {
	for shift := uint(0); shift < 64; shift += 7 {
		if n >= len(b) {
			return 0, 0, werrors.ErrTruncatedMessage
		}
		c := b[n]
		n++
		v |= (uint64(c) & 0x7f) << shift
		if c < 0x80 {
			return v, n, nil
		}
	}
	return 0, 0, werrors.ErrMalformedVarint
}

// ConsumeVarint32 decodes a 32-bit varint. Per canonical Protocol Buffers
// semantics, it accepts up to 10 bytes on the wire (the full 64-bit
// encoding) and discards any bits beyond the low 32 when the encoder
// over-specified the value: it decodes with ConsumeVarint and truncates the
// result, so the acceptance of high bits beyond 32 is intentional.
func ConsumeVarint32(b []byte) (v uint32, n int, err error) {
	full, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, err
	}
	return uint32(full), n, nil
}

// AppendVarint appends the base-128 varint encoding of v to b and returns
// the extended slice.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// SizeVarint returns the number of bytes AppendVarint would emit for v,
// without emitting them.
func SizeVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		n++
		v >>= 7
	}
	return n
}
