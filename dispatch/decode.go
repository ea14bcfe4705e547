package dispatch

import (
	"github.com/wirepb/wirepb/cursor"
	"github.com/wirepb/wirepb/werrors"
	"github.com/wirepb/wirepb/wire"
)

// Unmarshal drives the field-by-field decode loop of §4.3 over dec,
// dispatching each field to mt, and returns the finalized message.
//
//	message ← mt.NewMessage()
//	loop:
//	    tag ← dec.ReadTag()
//	    if tag == 0: break
//	    dispatch on wire type × field_info.value_type
//	return mt.CompleteMessage(message)
func Unmarshal(dec *cursor.Decoder, mt MessageType) (any, error) {
	message := mt.NewMessage()
	if err := unmarshalInto(dec, mt, message); err != nil {
		return nil, err
	}
	return mt.CompleteMessage(message), nil
}

// unmarshalInto runs the decode loop against an already-constructed message
// value, used both by the top-level Unmarshal and recursively for nested
// messages (each of which is decoded into a fresh NewMessage value of its
// own MessageType).
func unmarshalInto(dec *cursor.Decoder, mt MessageType, message any) error {
	var (
		havePrevTag bool
		prevNum     wire.Number
		prevInfo    FieldInfo
		prevWire    wire.Type
	)

	for {
		num, typ, err := dec.ReadTag()
		if err != nil {
			return err
		}
		if num == 0 {
			break
		}

		var info FieldInfo
		if havePrevTag && num == prevNum && typ == prevWire {
			info = prevInfo
		} else {
			info = mt.FieldByNumber(num)
			havePrevTag = true
			prevNum, prevInfo, prevWire = num, info, typ
		}

		if err := dispatchField(dec, mt, message, num, typ, info); err != nil {
			return err
		}
	}
	return nil
}

// dispatchField decodes and delivers a single field's value according to
// the dispatch table in §4.3.
func dispatchField(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, typ wire.Type, info FieldInfo) error {
	switch typ {
	case wire.VarintType:
		return dispatchVarint(dec, mt, message, num, info)
	case wire.Fixed32Type:
		return dispatchFixed32(dec, mt, message, num, info)
	case wire.Fixed64Type:
		return dispatchFixed64(dec, mt, message, num, info)
	case wire.BytesType:
		return dispatchBytes(dec, mt, message, num, info)
	case wire.StartGroupType:
		return dispatchGroup(dec, mt, message, num, info)
	case wire.EndGroupType:
		// An EndGroup with no matching StartGroup above it is malformed and
		// Unmarshal reports it; a matched EndGroup is consumed inside
		// SkipGroup and never reaches this switch.
		return werrors.ErrMalformedGroup
	default:
		return werrors.ErrMalformedGroup
	}
}

func dispatchVarint(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	if info.IsUnknown() {
		v, err := dec.ReadVarint64()
		if err != nil {
			return err
		}
		return recordUnknownVarint(mt, message, num, v)
	}
	if info.ValueType == wire.MessageValueType {
		return werrors.ErrMalformedGroup // illegal combination: message fields are never varint-encoded
	}
	// A lone Varint-wire-type occurrence of a repeated scalar field is the
	// unpacked encoding: decode exactly one value, same as for a
	// non-repeated field of that type.
	v, err := dec.ReadVarint64()
	if err != nil {
		return err
	}
	value, err := scalarFromVarint(info.ValueType, v)
	if err != nil {
		return err
	}
	mt.ConsumeField(message, num, value)
	return nil
}

func dispatchFixed32(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	if info.IsUnknown() {
		v, err := dec.ReadFixed32()
		if err != nil {
			return err
		}
		return recordUnknownFixed32(mt, message, num, v)
	}
	if info.ValueType == wire.MessageValueType {
		return werrors.ErrMalformedGroup
	}
	v, err := dec.ReadFixed32()
	if err != nil {
		return err
	}
	value, err := scalarFromFixed32(info.ValueType, v)
	if err != nil {
		return err
	}
	mt.ConsumeField(message, num, value)
	return nil
}

func dispatchFixed64(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	if info.IsUnknown() {
		v, err := dec.ReadFixed64()
		if err != nil {
			return err
		}
		return recordUnknownFixed64(mt, message, num, v)
	}
	if info.ValueType == wire.MessageValueType {
		return werrors.ErrMalformedGroup
	}
	v, err := dec.ReadFixed64()
	if err != nil {
		return err
	}
	value, err := scalarFromFixed64(info.ValueType, v)
	if err != nil {
		return err
	}
	mt.ConsumeField(message, num, value)
	return nil
}

func dispatchBytes(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	switch {
	case info.IsUnknown():
		raw, err := dec.ReadBytes()
		if err != nil {
			return err
		}
		return recordUnknownBytes(mt, message, num, raw)

	case info.ValueType == wire.MessageValueType:
		return dispatchNestedMessage(dec, mt, message, num, info)

	case info.ValueType == wire.StringType:
		s, err := dec.ReadString()
		if err != nil {
			return err
		}
		mt.ConsumeField(message, num, s)
		return nil

	case info.ValueType == wire.BytesValueType:
		raw, err := dec.ReadBytes()
		if err != nil {
			return err
		}
		cp := append([]byte(nil), raw...)
		mt.ConsumeField(message, num, cp)
		return nil

	case wire.IsPackable(info.ValueType):
		return dispatchPacked(dec, mt, message, num, info)

	default:
		return werrors.ErrMalformedGroup
	}
}

// dispatchNestedMessage implements §4.3's "Embedded-message recursion":
// read a length, push a limit, recurse, assert the limit was reached
// exactly, and pop.
func dispatchNestedMessage(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	length, err := dec.ReadLength()
	if err != nil {
		return err
	}
	prior, err := dec.PushLimit(length)
	if err != nil {
		return err
	}
	if err := dec.EnterRecursion(); err != nil {
		dec.PopLimit(prior)
		return err
	}

	nested := info.MessageType.NewMessage()
	err = unmarshalInto(dec, info.MessageType, nested)
	dec.ExitRecursion()
	if err != nil {
		dec.PopLimit(prior)
		return err
	}
	if !dec.ReachedLimit() {
		dec.PopLimit(prior)
		return werrors.ErrTruncatedMessage
	}
	dec.PopLimit(prior)

	final := info.MessageType.CompleteMessage(nested)
	mt.ConsumeField(message, num, final)
	return nil
}

// dispatchGroup implements group skipping (§4.3): groups carry no declared
// value type in this design (MessageType describes length-delimited
// submessages, not proto2 groups), so any StartGroup is skipped whether or
// not the field is declared, per the dispatch table's "StartGroup: skip" row.
func dispatchGroup(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	_ = mt
	_ = message
	_ = info
	return dec.SkipGroup(num)
}

// dispatchPacked implements §4.3's "Packed repeated fields": the payload is
// a sequence of un-tagged values of the field's scalar type, read under a
// pushed limit until the limit is reached.
func dispatchPacked(dec *cursor.Decoder, mt MessageType, message any, num wire.Number, info FieldInfo) error {
	length, err := dec.ReadLength()
	if err != nil {
		return err
	}
	prior, err := dec.PushLimit(length)
	if err != nil {
		return err
	}
	for !dec.ReachedLimit() {
		value, err := readPackedElement(dec, info.ValueType)
		if err != nil {
			dec.PopLimit(prior)
			return err
		}
		mt.ConsumeField(message, num, value)
	}
	dec.PopLimit(prior)
	return nil
}

// readPackedElement reads a single un-tagged element of the given scalar
// type from a packed payload.
func readPackedElement(dec *cursor.Decoder, vt wire.ValueType) (any, error) {
	switch {
	case wire.IsVarintEncoded(vt):
		v, err := dec.ReadVarint64()
		if err != nil {
			return nil, err
		}
		return scalarFromVarint(vt, v)
	case wire.IsFixed32Encoded(vt):
		v, err := dec.ReadFixed32()
		if err != nil {
			return nil, err
		}
		return scalarFromFixed32(vt, v)
	case wire.IsFixed64Encoded(vt):
		v, err := dec.ReadFixed64()
		if err != nil {
			return nil, err
		}
		return scalarFromFixed64(vt, v)
	default:
		return nil, werrors.ErrMalformedGroup
	}
}
