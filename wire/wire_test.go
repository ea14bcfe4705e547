// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirepb/wirepb/werrors"
	"github.com/wirepb/wirepb/wire"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 127, 128, 129, 300,
		1 << 14, 1<<14 - 1, 1 << 21, 1 << 28, 1 << 35,
		1<<42 - 1, 1 << 49, 1 << 56, 1 << 63, ^uint64(0),
	}
	for _, v := range values {
		b := wire.AppendVarint(nil, v)
		require.Equal(t, wire.SizeVarint(v), len(b))

		got, n, err := wire.ConsumeVarint(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, v, got)

		// Pad the buffer so the fast path (requires 10 bytes) also runs.
		padded := append(append([]byte{}, b...), make([]byte, 10)...)
		got2, n2, err := wire.ConsumeVarint64Fast(padded)
		require.NoError(t, err)
		require.Equal(t, n, n2)
		require.Equal(t, v, got2)
	}
}

func TestVarint32AcceptsOverlongEncoding(t *testing.T) {
	// A varint carrying bits above the low 32 (here a 5-byte encoding with
	// bit 32 set) must still decode to its low 32 bits, per §4.1.
	b := wire.AppendVarint(nil, uint64(1)<<32|42)
	v, n, err := wire.ConsumeVarint32(b)
	require.NoError(t, err)
	require.Equal(t, len(b), n)
	require.Equal(t, uint32(42), v)
}

func TestMalformedVarint(t *testing.T) {
	b := make([]byte, 11)
	for i := range b {
		b[i] = 0x80 // every byte keeps the continuation bit set
	}
	_, _, err := wire.ConsumeVarint(b)
	require.Error(t, err)
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, s := range []int32{0, 1, -1, 2, -2, 2147483647, -2147483648} {
		require.Equal(t, s, wire.DecodeZigZag32(wire.EncodeZigZag32(s)))
	}
	for _, s := range []int64{0, 1, -1, 2, -2, 1 << 40, -(1 << 40)} {
		require.Equal(t, s, wire.DecodeZigZag64(wire.EncodeZigZag64(s)))
	}
}

func TestZigZagKnownValue(t *testing.T) {
	// §8 scenario 5: zigzag_decode(3) = -2.
	require.Equal(t, int32(-2), wire.DecodeZigZag32(3))
}

func TestFixed32RoundTrip(t *testing.T) {
	b := wire.AppendFixed32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
	v, n, err := wire.ConsumeFixed32(b)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, uint32(0x01020304), v)
}

func TestFixed64RoundTrip(t *testing.T) {
	b := wire.AppendFixed64(nil, 0x0102030405060708)
	v, n, err := wire.ConsumeFixed64(b)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, uint64(0x0102030405060708), v)
}

func TestTagRoundTrip(t *testing.T) {
	b := wire.AppendTag(nil, 1, wire.VarintType)
	require.Equal(t, []byte{0x08}, b)
	num, typ, n, err := wire.ConsumeTag(b)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, wire.Number(1), num)
	require.Equal(t, wire.VarintType, typ)
}

func TestTagFieldNumberZeroIsInvalid(t *testing.T) {
	b := wire.AppendVarint(nil, wire.Tag(0, wire.VarintType))
	_, _, _, err := wire.ConsumeTag(b)
	require.ErrorIs(t, err, werrors.ErrInvalidTag)
}

func TestTagEmptyInputSignalsEndOfStream(t *testing.T) {
	num, typ, n, err := wire.ConsumeTag(nil)
	require.NoError(t, err)
	require.Equal(t, wire.Number(0), num)
	require.Equal(t, wire.Type(0), typ)
	require.Equal(t, 0, n)
}

func TestStringLaxUTF8(t *testing.T) {
	// An invalid UTF-8 byte is replaced with U+FFFD rather than erroring.
	payload := []byte{0xff, 'o', 'k'}
	b := wire.AppendBytes(nil, payload)
	s, n, err := wire.ConsumeString(b)
	require.NoError(t, err)
	require.Equal(t, len(b), n)
	require.Equal(t, "�ok", s)
}

func TestBytesLengthFraming(t *testing.T) {
	payload := []byte("testing")
	b := wire.AppendBytes(nil, payload)
	got, n, err := wire.ConsumeBytes(b)
	require.NoError(t, err)
	require.Equal(t, len(b), n)
	require.Equal(t, payload, got)
}

func TestLengthTruncated(t *testing.T) {
	b := wire.AppendLength(nil, 100)
	_, _, err := wire.ConsumeBytes(b)
	require.Error(t, err)
}
