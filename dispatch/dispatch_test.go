package dispatch_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirepb/wirepb/cursor"
	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/werrors"
	"github.com/wirepb/wirepb/wire"
	"github.com/wirepb/wirepb/wireout"
)

// testMsg is a minimal in-memory message record used to exercise the
// dispatcher without a generated message type.
type testMsg struct {
	fields  map[wire.Number][]any
	unknown [][]byte
}

func newTestMsg() *testMsg { return &testMsg{fields: map[wire.Number][]any{}} }

// testMessageType is a hand-rolled MessageType (§6.3) for tests: a plain
// map from field number to FieldInfo, with ConsumeField appending to a
// per-field slice (supporting both singular and repeated fields).
type testMessageType struct {
	info          map[wire.Number]dispatch.FieldInfo
	ignoreUnknown bool
	recordUnknown bool
}

func (t *testMessageType) NewMessage() any { return newTestMsg() }

func (t *testMessageType) FieldByNumber(num wire.Number) dispatch.FieldInfo {
	if fi, ok := t.info[num]; ok {
		return fi
	}
	return dispatch.FieldInfo{}
}

func (t *testMessageType) ConsumeField(message any, num wire.Number, value any) {
	m := message.(*testMsg)
	m.fields[num] = append(m.fields[num], value)
}

func (t *testMessageType) CompleteMessage(message any) any { return message }

func (t *testMessageType) IgnoreUnknown() bool { return t.ignoreUnknown }

func (t *testMessageType) RecordUnknown(message any, num wire.Number, raw []byte) {
	if !t.recordUnknown {
		return
	}
	m := message.(*testMsg)
	m.unknown = append(m.unknown, raw)
}

// IterateFields implements dispatch.FieldIterator by replaying the
// field/value pairs accumulated by ConsumeField, in ascending field-number
// order, one emit call per stored element (so repeated fields round-trip
// through Marshal -> Unmarshal as unpacked occurrences).
func (t *testMessageType) IterateFields(message any, emit func(num wire.Number, value any) error) error {
	m := message.(*testMsg)
	nums := make([]wire.Number, 0, len(m.fields))
	for num := range m.fields {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for _, num := range nums {
		for _, v := range m.fields[num] {
			if err := emit(num, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func TestUnmarshalVarint_Scenario1(t *testing.T) {
	b := []byte{0x08, 0x96, 0x01}
	mt := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		1: {ValueType: wire.Int32Type},
	}}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Equal(t, []any{int32(150)}, msg.fields[1])
}

func TestUnmarshalString_Scenario2(t *testing.T) {
	b := []byte{0x12, 0x07, 0x74, 0x65, 0x73, 0x74, 0x69, 0x6e, 0x67}
	mt := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		2: {ValueType: wire.StringType},
	}}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Equal(t, []any{"testing"}, msg.fields[2])
}

func TestUnmarshalNestedMessage_Scenario3(t *testing.T) {
	inner := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		1: {ValueType: wire.Int32Type},
	}}
	outer := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		3: {ValueType: wire.MessageValueType, MessageType: inner},
	}}
	b := []byte{0x1a, 0x02, 0x08, 0x2a}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, outer)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Len(t, msg.fields[3], 1)
	nested := msg.fields[3][0].(*testMsg)
	require.Equal(t, []any{int32(42)}, nested.fields[1])
}

func TestUnmarshalGroupSkip_Scenario4(t *testing.T) {
	b := []byte{0x13, 0x0d, 0x64, 0x00, 0x00, 0x00, 0x14}
	mt := &testMessageType{ignoreUnknown: true}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Empty(t, msg.fields)
}

func TestUnmarshalZigZag_Scenario5(t *testing.T) {
	b := []byte{0x50, 0x03}
	mt := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		10: {ValueType: wire.SInt32Type},
	}}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Equal(t, []any{int32(-2)}, msg.fields[10])
}

func TestUnmarshalMismatchedGroup(t *testing.T) {
	// StartGroup field 2, EndGroup field 3: mismatched.
	b := []byte{0x13, 0x1c}
	mt := &testMessageType{ignoreUnknown: true}
	dec := cursor.FromBytes(b, cursor.Options{})
	_, err := dispatch.Unmarshal(dec, mt)
	require.ErrorIs(t, err, werrors.ErrMalformedGroup)
}

func TestUnmarshalUnknownFieldRecorded(t *testing.T) {
	b := []byte{0x08, 0x2a} // field 1, varint 42, undeclared
	mt := &testMessageType{recordUnknown: true}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Len(t, msg.unknown, 1)
	require.Equal(t, b, msg.unknown[0])
}

func TestUnmarshalPackedRepeated(t *testing.T) {
	// field 4, length-delimited, containing three packed varints: 1, 2, 3.
	b := []byte{0x22, 0x03, 0x01, 0x02, 0x03}
	mt := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		4: {ValueType: wire.Int32Type, Repeated: true},
	}}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Equal(t, []any{int32(1), int32(2), int32(3)}, msg.fields[4])
}

func TestUnmarshalPackedFixed64(t *testing.T) {
	// field 5, packed repeated double: two doubles back-to-back.
	b := []byte{0x2a, 0x10}
	b = append(b, wire.AppendFixed64(nil, wire.Float64Bits(1.5))...)
	b = append(b, wire.AppendFixed64(nil, wire.Float64Bits(2.5))...)
	mt := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		5: {ValueType: wire.DoubleType, Repeated: true},
	}}
	dec := cursor.FromBytes(b, cursor.Options{})
	out, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)
	msg := out.(*testMsg)
	require.Equal(t, []any{1.5, 2.5}, msg.fields[5])
}

func TestUnmarshalRecursionLimit(t *testing.T) {
	// A message that nests itself with no base case eventually exceeds the
	// recursion limit rather than overflowing the Go call stack.
	var selfRef *testMessageType
	selfRef = &testMessageType{}
	selfRef.info = map[wire.Number]dispatch.FieldInfo{
		1: {ValueType: wire.MessageValueType, MessageType: selfRef},
	}
	var b []byte
	// Build 70 levels of nesting: field 1, length-delimited, each wrapping
	// the next, deepest payload empty. Length is varint-encoded properly
	// since the innermost layers alone already exceed a single-byte length.
	for i := 0; i < 70; i++ {
		layer := wire.AppendTag(nil, 1, wire.BytesType)
		layer = wire.AppendVarint(layer, uint64(len(b)))
		layer = append(layer, b...)
		b = layer
	}
	dec := cursor.FromBytes(b, cursor.Options{RecursionLimit: 64})
	_, err := dispatch.Unmarshal(dec, selfRef)
	require.ErrorIs(t, err, werrors.ErrRecursionLimitExceeded)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	mt := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		1: {ValueType: wire.Int32Type},
		2: {ValueType: wire.StringType},
		4: {ValueType: wire.Int32Type, Repeated: true},
	}}
	in := []byte{
		0x08, 0x96, 0x01, // field 1, varint 150
		0x12, 0x03, 'a', 'b', 'c', // field 2, string "abc"
		0x20, 0x05, // field 4, varint 5
		0x20, 0x06, // field 4, varint 6
	}
	dec := cursor.FromBytes(in, cursor.Options{})
	decoded, err := dispatch.Unmarshal(dec, mt)
	require.NoError(t, err)

	enc := wireout.ToBuffer(0)
	require.NoError(t, dispatch.Marshal(enc, mt, decoded))

	dec2 := cursor.FromBytes(enc.Bytes(), cursor.Options{})
	roundTripped, err := dispatch.Unmarshal(dec2, mt)
	require.NoError(t, err)
	require.Equal(t, decoded, roundTripped)
}

func TestMarshalNestedMessage(t *testing.T) {
	inner := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		1: {ValueType: wire.Int32Type},
	}}
	outer := &testMessageType{info: map[wire.Number]dispatch.FieldInfo{
		3: {ValueType: wire.MessageValueType, MessageType: inner},
	}}
	b := []byte{0x1a, 0x02, 0x08, 0x2a}
	dec := cursor.FromBytes(b, cursor.Options{})
	decoded, err := dispatch.Unmarshal(dec, outer)
	require.NoError(t, err)

	enc := wireout.ToBuffer(0)
	require.NoError(t, dispatch.Marshal(enc, outer, decoded))
	require.Equal(t, b, enc.Bytes())
}
