package wire

import "github.com/wirepb/wirepb/werrors"

// FastVarint64Bytes and FastVarint32Bytes are the minimum number of
// contiguous bytes a caller must guarantee before using the fast-path
// decoders below. With fewer bytes available, fall back to ConsumeVarint.
const (
	FastVarint32Bytes = 5
	FastVarint64Bytes = 10
)

// ConsumeVarint64Fast decodes a varint from b, which MUST have at least
// FastVarint64Bytes bytes available (the caller is responsible for the
// availability check; this function does not bounds-check each byte). It is
// the unrolled hot-path counterpart of ConsumeVarint, used by cursor when the
// current segment is known to have enough bytes left that per-byte
// availability checks would be pure overhead.
func ConsumeVarint64Fast(b []byte) (v uint64, n int, err error) {
	_ = b[9] // bounds-check hint: guarantee the compiler sees all 10 bytes are addressable

	b0 := uint64(b[0])
	if b0 < 0x80 {
		return b0, 1, nil
	}
	v = b0 & 0x7f

	b1 := uint64(b[1])
	v |= (b1 & 0x7f) << 7
	if b1 < 0x80 {
		return v, 2, nil
	}

	b2 := uint64(b[2])
	v |= (b2 & 0x7f) << 14
	if b2 < 0x80 {
		return v, 3, nil
	}

	b3 := uint64(b[3])
	v |= (b3 & 0x7f) << 21
	if b3 < 0x80 {
		return v, 4, nil
	}

	b4 := uint64(b[4])
	v |= (b4 & 0x7f) << 28
	if b4 < 0x80 {
		return v, 5, nil
	}

	b5 := uint64(b[5])
	v |= (b5 & 0x7f) << 35
	if b5 < 0x80 {
		return v, 6, nil
	}

	b6 := uint64(b[6])
	v |= (b6 & 0x7f) << 42
	if b6 < 0x80 {
		return v, 7, nil
	}

	b7 := uint64(b[7])
	v |= (b7 & 0x7f) << 49
	if b7 < 0x80 {
		return v, 8, nil
	}

	b8 := uint64(b[8])
	v |= (b8 & 0x7f) << 56
	if b8 < 0x80 {
		return v, 9, nil
	}

	b9 := uint64(b[9])
	v |= (b9 & 0x7f) << 63
	if b9 < 0x80 {
		return v, 10, nil
	}

	return 0, 0, werrors.ErrMalformedVarint
}

// ConsumeVarint32Fast decodes a 32-bit varint from b, which MUST have at
// least FastVarint32Bytes bytes available. It discards bits above the low 32
// when the wire encoding over-specifies the value with a fifth continuation
// byte, matching canonical Protocol Buffers semantics for over-long 32-bit
// varints: a sixth or later byte is accepted whatever it carries in bits
// 32..63, but more than 10 total bytes is still malformed.
func ConsumeVarint32Fast(b []byte) (v uint32, n int, err error) {
	_ = b[4]

	b0 := uint32(b[0])
	if b0 < 0x80 {
		return b0, 1, nil
	}
	v = b0 & 0x7f

	b1 := uint32(b[1])
	v |= (b1 & 0x7f) << 7
	if b1 < 0x80 {
		return v, 2, nil
	}

	b2 := uint32(b[2])
	v |= (b2 & 0x7f) << 14
	if b2 < 0x80 {
		return v, 3, nil
	}

	b3 := uint32(b[3])
	v |= (b3 & 0x7f) << 21
	if b3 < 0x80 {
		return v, 4, nil
	}

	b4 := uint32(b[4])
	v |= (b4 & 0x7f) << 28
	if b4 < 0x80 {
		return v, 5, nil
	}

	// The value doesn't fit in 5 bytes of useful bits; the wire format still
	// allows up to 10 bytes total (a 64-bit-shaped encoding of a value whose
	// low 32 bits is what we want). b is only guaranteed to hold 5 bytes
	// here, so fall back to the bounds-checked decoder rather than assuming
	// 10 are available.
	full, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, err
	}
	return uint32(full), n, nil
}
