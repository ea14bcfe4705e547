package proto_test

import (
	"testing"

	reflect "github.com/goccy/go-reflect"
	"github.com/stretchr/testify/require"

	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/proto"
	"github.com/wirepb/wirepb/structcodec"
	"github.com/wirepb/wirepb/werrors"
)

type greeting struct {
	Text string `wire:"1,string"`
}

func TestMarshalUnmarshalFreeFunctions(t *testing.T) {
	reg := structcodec.NewRegistry(4)
	mt, err := reg.For(reflect.TypeOf(greeting{}))
	require.NoError(t, err)

	b, err := proto.Marshal(mt, &greeting{Text: "hello"})
	require.NoError(t, err)

	out, err := proto.Unmarshal(b, mt)
	require.NoError(t, err)
	require.Equal(t, "hello", out.(*greeting).Text)
}

func TestBufferReuseAcrossMarshalCalls(t *testing.T) {
	reg := structcodec.NewRegistry(4)
	mt, err := reg.For(reflect.TypeOf(greeting{}))
	require.NoError(t, err)

	buf := proto.NewBuffer(nil)
	require.NoError(t, buf.Marshal(mt, &greeting{Text: "a"}))
	firstLen := len(buf.Bytes())
	require.NoError(t, buf.Marshal(mt, &greeting{Text: "bb"}))
	require.Greater(t, len(buf.Bytes()), firstLen)
}

func TestUnmarshalConcurrentDecodesIndependentMessages(t *testing.T) {
	reg := structcodec.NewRegistry(4)
	mt, err := reg.For(reflect.TypeOf(greeting{}))
	require.NoError(t, err)

	texts := []string{"one", "two", "three", "four", "five"}
	raw := make([][]byte, len(texts))
	mts := make([]dispatch.MessageType, len(texts))
	for i, text := range texts {
		b, err := proto.Marshal(mt, &greeting{Text: text})
		require.NoError(t, err)
		raw[i] = b
		mts[i] = mt
	}

	out, err := proto.UnmarshalConcurrent(raw, mts)
	require.NoError(t, err)
	for i, text := range texts {
		require.Equal(t, text, out[i].(*greeting).Text)
	}
}

func TestDelimitedRoundTripAndExpectEOF(t *testing.T) {
	reg := structcodec.NewRegistry(4)
	mt, err := reg.For(reflect.TypeOf(greeting{}))
	require.NoError(t, err)

	buf := proto.NewBuffer(nil)
	require.NoError(t, buf.MarshalDelimited(mt, &greeting{Text: "one"}))
	require.NoError(t, buf.MarshalDelimited(mt, &greeting{Text: "two"}))

	out, err := buf.UnmarshalDelimited(mt)
	require.NoError(t, err)
	require.Equal(t, "one", out.(*greeting).Text)
	require.ErrorIs(t, buf.ExpectEOF(), werrors.ErrMoreDataAvailable)

	out, err = buf.UnmarshalDelimited(mt)
	require.NoError(t, err)
	require.Equal(t, "two", out.(*greeting).Text)
	require.NoError(t, buf.ExpectEOF())
}

func TestMarshalConcurrentEncodesIndependentMessages(t *testing.T) {
	reg := structcodec.NewRegistry(4)
	mt, err := reg.For(reflect.TypeOf(greeting{}))
	require.NoError(t, err)

	texts := []string{"x", "yy", "zzz"}
	messages := make([]any, len(texts))
	mts := make([]dispatch.MessageType, len(texts))
	for i, text := range texts {
		messages[i] = &greeting{Text: text}
		mts[i] = mt
	}

	encoded, err := proto.MarshalConcurrent(messages, mts)
	require.NoError(t, err)
	for i := range texts {
		out, err := proto.Unmarshal(encoded[i], mt)
		require.NoError(t, err)
		require.Equal(t, texts[i], out.(*greeting).Text)
	}
}
