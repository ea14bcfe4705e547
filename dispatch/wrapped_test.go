package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/wire"
	"github.com/wirepb/wirepb/wireout"
)

func unwrap(t *testing.T, e *wireout.Encoder) []byte {
	t.Helper()
	payload, _, err := wire.ConsumeBytes(e.Bytes())
	require.NoError(t, err)
	return payload
}

func TestWrappedInt32RoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedInt32(-7))
	got, err := dispatch.ReadWrappedInt32(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, int32(-7), got)
}

func TestWrappedInt64RoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedInt64(-1234567890123))
	got, err := dispatch.ReadWrappedInt64(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, int64(-1234567890123), got)
}

func TestWrappedUInt32RoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedUInt32(42))
	got, err := dispatch.ReadWrappedUInt32(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, uint32(42), got)
}

func TestWrappedUInt64RoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedUInt64(9999999999))
	got, err := dispatch.ReadWrappedUInt64(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, uint64(9999999999), got)
}

func TestWrappedBoolRoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedBool(true))
	got, err := dispatch.ReadWrappedBool(unwrap(t, e))
	require.NoError(t, err)
	require.True(t, got)
}

func TestWrappedFloatRoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedFloat(3.5))
	got, err := dispatch.ReadWrappedFloat(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, float32(3.5), got)
}

func TestWrappedDoubleRoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedDouble(3.25))
	got, err := dispatch.ReadWrappedDouble(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, 3.25, got)
}

func TestWrappedStringRoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedString("hi"))
	got, err := dispatch.ReadWrappedString(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, "hi", got)
}

func TestWrappedBytesRoundTrips(t *testing.T) {
	e := wireout.ToBuffer(0)
	require.NoError(t, e.WriteWrappedBytes([]byte{1, 2, 3}))
	got, err := dispatch.ReadWrappedBytes(unwrap(t, e))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)
}

// TestWrappedAbsentFieldReturnsZeroValue covers proto3's wrapper
// default-value convention: an empty payload (the field entirely absent)
// decodes to the zero value rather than an error.
func TestWrappedAbsentFieldReturnsZeroValue(t *testing.T) {
	got, err := dispatch.ReadWrappedInt32(nil)
	require.NoError(t, err)
	require.Equal(t, int32(0), got)

	gotS, err := dispatch.ReadWrappedString(nil)
	require.NoError(t, err)
	require.Equal(t, "", gotS)
}
