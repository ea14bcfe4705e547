package wire

import (
	"unicode/utf8"

	"github.com/wirepb/wirepb/werrors"
)

// ConsumeLength decodes the varint length prefix that precedes every
// length-delimited field value, returning the length and the bytes consumed
// by the prefix itself (not including the payload). A length that is
// negative when the varint is reinterpreted as signed is ErrNegativeSize.
func ConsumeLength(b []byte) (length int, n int, err error) {
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, err
	}
	if int64(v) < 0 {
		return 0, 0, werrors.ErrNegativeSize
	}
	return int(v), n, nil
}

// ConsumeBytes decodes a length-delimited byte payload: a varint length
// followed by that many bytes. It returns a slice into b (no copy); callers
// that need an owned copy must copy it themselves. n is the total bytes
// consumed, prefix and payload included.
func ConsumeBytes(b []byte) (payload []byte, n int, err error) {
	length, prefixLen, err := ConsumeLength(b)
	if err != nil {
		return nil, 0, err
	}
	if length > len(b)-prefixLen {
		return nil, 0, werrors.ErrTruncatedMessage
	}
	start := prefixLen
	end := prefixLen + length
	return b[start:end], end, nil
}

// ConsumeString decodes a length-delimited string payload the same way as
// ConsumeBytes, then lax-decodes it as UTF-8: invalid byte sequences are
// replaced with U+FFFD rather than raising an error, matching the Protocol
// Buffers compatibility rule for string fields (§4.1).
func ConsumeString(b []byte) (s string, n int, err error) {
	payload, n, err := ConsumeBytes(b)
	if err != nil {
		return "", 0, err
	}
	return LaxUTF8(payload), n, nil
}

// LaxUTF8 decodes b as UTF-8, substituting U+FFFD for every byte sequence
// that isn't valid UTF-8 rather than raising an error, per the Protocol
// Buffers compatibility rule for string fields (§4.1).
func LaxUTF8(payload []byte) string {
	if utf8.Valid(payload) {
		return string(payload)
	}
	return sanitizeUTF8(payload)
}

// sanitizeUTF8 rewrites payload into a valid UTF-8 string, substituting
// U+FFFD for every offending byte, one rune at a time.
func sanitizeUTF8(payload []byte) string {
	var out []rune
	for i := 0; i < len(payload); {
		r, size := utf8.DecodeRune(payload[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, utf8.RuneError)
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return string(out)
}

// AppendLength appends the varint length prefix for a payload of the given
// length.
func AppendLength(b []byte, length int) []byte {
	return AppendVarint(b, uint64(length))
}

// AppendBytes appends a length-delimited encoding of payload.
func AppendBytes(b []byte, payload []byte) []byte {
	b = AppendLength(b, len(payload))
	return append(b, payload...)
}

// AppendString appends a length-delimited encoding of s.
func AppendString(b []byte, s string) []byte {
	b = AppendLength(b, len(s))
	return append(b, s...)
}

// SizeBytes returns the encoded size (prefix + payload) of a length-delimited
// field holding length bytes.
func SizeBytes(length int) int {
	return SizeVarint(uint64(length)) + length
}
