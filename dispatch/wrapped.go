package dispatch

import (
	"github.com/wirepb/wirepb/cursor"
	"github.com/wirepb/wirepb/wire"
)

// Wrapped readers (§9): a well-known wrapper type (google.protobuf.Int32Value
// and friends) is, at the wire level, a length-prefixed nested message whose
// only field is the primitive at field number 1. These helpers decode that
// shape by running the ordinary dispatch loop one level deeper against a
// minimal single-field MessageType, rather than hand-parsing the tag and
// value — the wrapped-primitive path stays on the same decode path as every
// other message, so a fix to that path also fixes this one.

// wrapperHolder is the message value a wrapperMessageType decodes into: the
// single field 1 value, if present.
type wrapperHolder struct {
	value any
	set   bool
}

// wrapperMessageType is a MessageType describing a wrapper message: one
// optional field at number 1 of the given scalar ValueType, every other
// field number ignored.
type wrapperMessageType struct {
	valueType wire.ValueType
}

func (w wrapperMessageType) NewMessage() any { return &wrapperHolder{} }

func (w wrapperMessageType) FieldByNumber(num wire.Number) FieldInfo {
	if num != 1 {
		return FieldInfo{ValueType: wire.Unknown}
	}
	return FieldInfo{ValueType: w.valueType}
}

func (w wrapperMessageType) ConsumeField(message any, num wire.Number, value any) {
	h := message.(*wrapperHolder)
	h.value, h.set = value, true
}

func (w wrapperMessageType) CompleteMessage(message any) any { return message }

func (w wrapperMessageType) IgnoreUnknown() bool { return true }

// readWrapped decodes payload (the bytes inside the wrapper's outer length
// prefix) against a wrapperMessageType for vt.
func readWrapped(payload []byte, vt wire.ValueType) (*wrapperHolder, error) {
	dec := cursor.FromBytes(payload, cursor.Options{})
	msg, err := Unmarshal(dec, wrapperMessageType{valueType: vt})
	if err != nil {
		return nil, err
	}
	return msg.(*wrapperHolder), nil
}

// ReadWrappedInt32 decodes a google.protobuf.Int32Value payload (the bytes
// inside the outer length prefix). It tolerates the field being entirely
// absent, per proto3's wrapper default-value convention, returning 0 in
// that case.
func ReadWrappedInt32(payload []byte) (int32, error) {
	h, err := readWrapped(payload, wire.Int32Type)
	if err != nil || !h.set {
		return 0, err
	}
	return h.value.(int32), nil
}

// ReadWrappedInt64 decodes a google.protobuf.Int64Value payload.
func ReadWrappedInt64(payload []byte) (int64, error) {
	h, err := readWrapped(payload, wire.Int64Type)
	if err != nil || !h.set {
		return 0, err
	}
	return h.value.(int64), nil
}

// ReadWrappedUInt32 decodes a google.protobuf.UInt32Value payload.
func ReadWrappedUInt32(payload []byte) (uint32, error) {
	h, err := readWrapped(payload, wire.UInt32Type)
	if err != nil || !h.set {
		return 0, err
	}
	return h.value.(uint32), nil
}

// ReadWrappedUInt64 decodes a google.protobuf.UInt64Value payload.
func ReadWrappedUInt64(payload []byte) (uint64, error) {
	h, err := readWrapped(payload, wire.UInt64Type)
	if err != nil || !h.set {
		return 0, err
	}
	return h.value.(uint64), nil
}

// ReadWrappedBool decodes a google.protobuf.BoolValue payload.
func ReadWrappedBool(payload []byte) (bool, error) {
	h, err := readWrapped(payload, wire.BoolType)
	if err != nil || !h.set {
		return false, err
	}
	return h.value.(bool), nil
}

// ReadWrappedFloat decodes a google.protobuf.FloatValue payload.
func ReadWrappedFloat(payload []byte) (float32, error) {
	h, err := readWrapped(payload, wire.FloatType)
	if err != nil || !h.set {
		return 0, err
	}
	return h.value.(float32), nil
}

// ReadWrappedDouble decodes a google.protobuf.DoubleValue payload.
func ReadWrappedDouble(payload []byte) (float64, error) {
	h, err := readWrapped(payload, wire.DoubleType)
	if err != nil || !h.set {
		return 0, err
	}
	return h.value.(float64), nil
}

// ReadWrappedString decodes a google.protobuf.StringValue payload.
func ReadWrappedString(payload []byte) (string, error) {
	h, err := readWrapped(payload, wire.StringType)
	if err != nil || !h.set {
		return "", err
	}
	return h.value.(string), nil
}

// ReadWrappedBytes decodes a google.protobuf.BytesValue payload.
func ReadWrappedBytes(payload []byte) ([]byte, error) {
	h, err := readWrapped(payload, wire.BytesValueType)
	if err != nil || !h.set {
		return nil, err
	}
	return h.value.([]byte), nil
}
