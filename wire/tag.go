package wire

import "github.com/wirepb/wirepb/werrors"

// ConsumeTag decodes a tag from the front of b. It returns the field number,
// wire type, and bytes consumed. If b is empty, it returns (0, 0, 0, nil) to
// signal end of input/stream, matching §4.1's "return 0 to signal end of
// stream" rule. If the decoded field number is 0, it returns ErrInvalidTag.
//
// ConsumeTag takes the specialized one/two-byte fast path described in
// §4.1 whenever at least 2 bytes are available (a one- or two-byte tag covers
// field numbers <= 2047); with fewer than 2 bytes, or when neither of the first
// two bytes terminates the varint, it falls through to the general varint
// decoder. This fallthrough is deliberate: a buggy ancestor implementation
// special-cased "exactly one byte with the continuation bit set" as end of
// input, silently under-consuming at segment boundaries. That case is
// handled here by falling into ConsumeVarint like any other case.
func ConsumeTag(b []byte) (num Number, typ Type, n int, err error) {
	if len(b) == 0 {
		return 0, 0, 0, nil
	}
	if len(b) >= 2 {
		b0 := uint64(b[0])
		if b0 < 0x80 {
			num, typ = DecodeTag(b0)
			if num == 0 {
				return 0, 0, 0, werrors.ErrInvalidTag
			}
			return num, typ, 1, nil
		}
		b1 := uint64(b[1])
		if b1 < 0x80 {
			v := (b0 & 0x7f) | (b1 << 7)
			num, typ = DecodeTag(v)
			if num == 0 {
				return 0, 0, 0, werrors.ErrInvalidTag
			}
			return num, typ, 2, nil
		}
	}
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, 0, err
	}
	num, typ = DecodeTag(v)
	if num == 0 {
		return 0, 0, 0, werrors.ErrInvalidTag
	}
	return num, typ, n, nil
}

// AppendTag appends the encoded tag for (number, typ) to b.
func AppendTag(b []byte, number Number, typ Type) []byte {
	return AppendVarint(b, Tag(number, typ))
}

// SizeTag returns the number of bytes AppendTag would emit for number.
// (The wire type does not affect tag size.)
func SizeTag(number Number) int {
	return SizeVarint(Tag(number, 0))
}
