package dispatch

import (
	"github.com/wirepb/wirepb/wire"
	"github.com/wirepb/wirepb/wireout"
)

// FieldIterator is the encode-side counterpart of MessageType: an optional
// capability that lets Marshal walk a message's populated fields without
// knowing its concrete Go shape, mirroring how ConsumeField lets Unmarshal
// deliver values without knowing it either. A MessageType that does not
// implement FieldIterator can still be used to decode; it simply cannot be
// passed to Marshal.
//
// IterateFields calls emit once per populated field occurrence: once for a
// singular field, once per element for a repeated field (dispatch does not
// decide packing on a caller's behalf — a FieldIterator that wants packed
// output should call wireout's WritePacked* writers itself and skip
// delegating those fields to Marshal's per-element tag+value writes).
type FieldIterator interface {
	IterateFields(message any, emit func(num wire.Number, value any) error) error
}

// Marshal drives the encode-side counterpart of Unmarshal: for each
// populated field of message (as reported by mt's FieldIterator
// implementation), it writes a tag and the field's value to enc; a nested
// message is marshaled by a recursive Marshal call against the field's
// declared MessageType and then written as a length-prefixed payload.
func Marshal(enc *wireout.Encoder, mt MessageType, message any) error {
	iter, ok := mt.(FieldIterator)
	if !ok {
		return errNotIterable
	}
	return iter.IterateFields(message, func(num wire.Number, value any) error {
		return writeField(enc, mt, num, value)
	})
}

func writeField(enc *wireout.Encoder, mt MessageType, num wire.Number, value any) error {
	info := mt.FieldByNumber(num)
	if info.ValueType == wire.MessageValueType {
		return writeNestedMessage(enc, info, num, value)
	}

	typ := fieldWireType(info.ValueType)
	if err := enc.WriteTag(num, typ); err != nil {
		return err
	}
	return writeScalar(enc, info.ValueType, value)
}

// writeNestedMessage marshals value (itself a message object understood by
// info.MessageType) into its own buffer, then writes it as a length-prefixed
// field of the parent, mirroring dispatchNestedMessage's decode-side
// push_limit/recurse/pop_limit shape in reverse.
func writeNestedMessage(enc *wireout.Encoder, info FieldInfo, num wire.Number, value any) error {
	sub := wireout.ToBuffer(0)
	if err := Marshal(sub, info.MessageType, value); err != nil {
		return err
	}
	if err := enc.WriteTag(num, wire.BytesType); err != nil {
		return err
	}
	return enc.WriteMessage(sub.Bytes())
}

// fieldWireType reports the wire type a declared scalar ValueType is
// carried on, the encode-side mirror of the decoder's wire-type switch in
// dispatchField.
func fieldWireType(vt wire.ValueType) wire.Type {
	switch {
	case wire.IsVarintEncoded(vt):
		return wire.VarintType
	case wire.IsFixed32Encoded(vt):
		return wire.Fixed32Type
	case wire.IsFixed64Encoded(vt):
		return wire.Fixed64Type
	default:
		return wire.BytesType // string, bytes
	}
}

func writeScalar(enc *wireout.Encoder, vt wire.ValueType, value any) error {
	switch vt {
	case wire.DoubleType:
		return enc.WriteDouble(value.(float64))
	case wire.FloatType:
		return enc.WriteFloat(value.(float32))
	case wire.Int32Type:
		return enc.WriteInt32(value.(int32))
	case wire.Int64Type:
		return enc.WriteInt64(value.(int64))
	case wire.UInt32Type:
		return enc.WriteUInt32(value.(uint32))
	case wire.UInt64Type:
		return enc.WriteUInt64(value.(uint64))
	case wire.SInt32Type:
		return enc.WriteSInt32(value.(int32))
	case wire.SInt64Type:
		return enc.WriteSInt64(value.(int64))
	case wire.Fixed32ValueType:
		return enc.WriteFixed32(value.(uint32))
	case wire.Fixed64ValueType:
		return enc.WriteFixed64(value.(uint64))
	case wire.SFixed32Type:
		return enc.WriteSFixed32(value.(int32))
	case wire.SFixed64Type:
		return enc.WriteSFixed64(value.(int64))
	case wire.BoolType:
		return enc.WriteBool(value.(bool))
	case wire.EnumType:
		return enc.WriteEnum(value.(int32))
	case wire.StringType:
		return enc.WriteString(value.(string))
	case wire.BytesValueType:
		return enc.WriteBytes(value.([]byte))
	default:
		return errUnsupportedFieldType
	}
}
