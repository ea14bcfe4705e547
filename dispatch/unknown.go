package dispatch

import "github.com/wirepb/wirepb/wire"

// recordUnknownVarint, recordUnknownFixed32/64, and recordUnknownBytes
// implement §4.3's "Unknowns" rule: when a field number is not in the
// descriptor, consume its payload per the wire type and, if the
// MessageType additionally implements UnknownRecorder and does not set
// IgnoreUnknown, reconstruct the tag+value bytes and hand them to
// RecordUnknown. This mirrors proto.Buffer's skipAndSave, which re-encodes
// the tag alongside the already-decoded value rather than needing to
// buffer raw wire bytes as they're read.

func recordUnknownVarint(mt MessageType, message any, num wire.Number, v uint64) error {
	if mt.IgnoreUnknown() {
		return nil
	}
	rec, ok := mt.(UnknownRecorder)
	if !ok {
		return nil
	}
	raw := wire.AppendTag(nil, num, wire.VarintType)
	raw = wire.AppendVarint(raw, v)
	rec.RecordUnknown(message, num, raw)
	return nil
}

func recordUnknownFixed32(mt MessageType, message any, num wire.Number, v uint32) error {
	if mt.IgnoreUnknown() {
		return nil
	}
	rec, ok := mt.(UnknownRecorder)
	if !ok {
		return nil
	}
	raw := wire.AppendTag(nil, num, wire.Fixed32Type)
	raw = wire.AppendFixed32(raw, v)
	rec.RecordUnknown(message, num, raw)
	return nil
}

func recordUnknownFixed64(mt MessageType, message any, num wire.Number, v uint64) error {
	if mt.IgnoreUnknown() {
		return nil
	}
	rec, ok := mt.(UnknownRecorder)
	if !ok {
		return nil
	}
	raw := wire.AppendTag(nil, num, wire.Fixed64Type)
	raw = wire.AppendFixed64(raw, v)
	rec.RecordUnknown(message, num, raw)
	return nil
}

func recordUnknownBytes(mt MessageType, message any, num wire.Number, payload []byte) error {
	if mt.IgnoreUnknown() {
		return nil
	}
	rec, ok := mt.(UnknownRecorder)
	if !ok {
		return nil
	}
	raw := wire.AppendTag(nil, num, wire.BytesType)
	raw = wire.AppendBytes(raw, payload)
	rec.RecordUnknown(message, num, raw)
	return nil
}
