// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the primitive encode/decode routines for the
// Protocol Buffers binary wire format: tags, varints, zig-zag integers,
// little-endian fixed-width integers, and length-delimited framing.
//
// This package depends only on werrors and the standard library; it is the
// base layer that cursor, dispatch, and wireout all build on.
package wire

// Number is a field number, as declared in a .proto file. Valid field
// numbers range from 1 to 2^29-1; 0 is never a valid field number.
type Number int32

// MinValidNumber and MaxValidNumber bound the legal field-number range.
const (
	MinValidNumber Number = 1
	MaxValidNumber Number = 1<<29 - 1
)

// IsValid reports whether n is a legal field number.
func (n Number) IsValid() bool {
	return n >= MinValidNumber && n <= MaxValidNumber
}

// Type is the 3-bit wire type that accompanies every field tag.
type Type int8

const (
	VarintType     Type = 0
	Fixed64Type    Type = 1
	BytesType      Type = 2 // length-delimited
	StartGroupType Type = 3
	EndGroupType   Type = 4
	Fixed32Type    Type = 5
)

func (t Type) String() string {
	switch t {
	case VarintType:
		return "varint"
	case Fixed64Type:
		return "fixed64"
	case BytesType:
		return "bytes"
	case StartGroupType:
		return "start_group"
	case EndGroupType:
		return "end_group"
	case Fixed32Type:
		return "fixed32"
	default:
		return "unknown_wire_type"
	}
}

const wireTypeMask = 0x7

// Tag packs a field number and wire type into the value carried before
// every field on the wire: tag = (number << 3) | wireType.
func Tag(number Number, typ Type) uint64 {
	return uint64(number)<<3 | uint64(typ&wireTypeMask)
}

// DecodeTag unpacks a raw tag value into its field number and wire type.
func DecodeTag(tag uint64) (Number, Type) {
	return Number(tag >> 3), Type(tag & wireTypeMask)
}

// ValueType is the closed enumeration of declared logical field types a
// MessageType descriptor may report for a field. Unknown means "no
// declared type, skip this field's bytes per its wire type."
type ValueType int8

const (
	Unknown ValueType = iota
	DoubleType
	FloatType
	Int32Type
	Int64Type
	UInt32Type
	UInt64Type
	SInt32Type
	SInt64Type
	Fixed32ValueType
	Fixed64ValueType
	SFixed32Type
	SFixed64Type
	BoolType
	StringType
	BytesValueType
	EnumType
	MessageValueType
)

func (vt ValueType) String() string {
	switch vt {
	case DoubleType:
		return "double"
	case FloatType:
		return "float"
	case Int32Type:
		return "int32"
	case Int64Type:
		return "int64"
	case UInt32Type:
		return "uint32"
	case UInt64Type:
		return "uint64"
	case SInt32Type:
		return "sint32"
	case SInt64Type:
		return "sint64"
	case Fixed32ValueType:
		return "fixed32"
	case Fixed64ValueType:
		return "fixed64"
	case SFixed32Type:
		return "sfixed32"
	case SFixed64Type:
		return "sfixed64"
	case BoolType:
		return "bool"
	case StringType:
		return "string"
	case BytesValueType:
		return "bytes"
	case EnumType:
		return "enum"
	case MessageValueType:
		return "message"
	default:
		return "unknown"
	}
}

// IsVarintEncoded reports whether vt is carried on the wire as a Varint.
func IsVarintEncoded(vt ValueType) bool {
	switch vt {
	case Int32Type, Int64Type, UInt32Type, UInt64Type, SInt32Type, SInt64Type, BoolType, EnumType:
		return true
	default:
		return false
	}
}

// IsFixed32Encoded reports whether vt is carried on the wire as a Fixed32.
func IsFixed32Encoded(vt ValueType) bool {
	switch vt {
	case FloatType, Fixed32ValueType, SFixed32Type:
		return true
	default:
		return false
	}
}

// IsFixed64Encoded reports whether vt is carried on the wire as a Fixed64.
func IsFixed64Encoded(vt ValueType) bool {
	switch vt {
	case DoubleType, Fixed64ValueType, SFixed64Type:
		return true
	default:
		return false
	}
}

// IsPackable reports whether vt may appear in a packed repeated field
// (every scalar type except string/bytes/message).
func IsPackable(vt ValueType) bool {
	switch vt {
	case StringType, BytesValueType, MessageValueType, Unknown:
		return false
	default:
		return true
	}
}
