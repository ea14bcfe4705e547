package dispatch

import (
	"github.com/wirepb/wirepb/werrors"
	"github.com/wirepb/wirepb/wire"
)

// scalarFromVarint converts a raw varint payload into the Go value matching
// a declared scalar ValueType, applying zig-zag decoding for the sint
// variants. The returned value's dynamic type is always one of the scalars
// documented on MessageType.ConsumeField.
func scalarFromVarint(vt wire.ValueType, v uint64) (any, error) {
	switch vt {
	case wire.Int32Type:
		return int32(v), nil
	case wire.Int64Type:
		return int64(v), nil
	case wire.UInt32Type:
		return uint32(v), nil
	case wire.UInt64Type:
		return v, nil
	case wire.SInt32Type:
		return wire.DecodeZigZag32(uint32(v)), nil
	case wire.SInt64Type:
		return wire.DecodeZigZag64(v), nil
	case wire.BoolType:
		return v != 0, nil
	case wire.EnumType:
		return int32(v), nil
	default:
		return nil, werrors.ErrUnsupportedValueType
	}
}

// scalarFromFixed32 converts a raw fixed32 payload per §4.1: Float is a bit
// reinterpretation, Fixed32/SFixed32 are a direct (re)cast.
func scalarFromFixed32(vt wire.ValueType, v uint32) (any, error) {
	switch vt {
	case wire.FloatType:
		return wire.Float32FromBits(v), nil
	case wire.Fixed32ValueType:
		return v, nil
	case wire.SFixed32Type:
		return int32(v), nil
	default:
		return nil, werrors.ErrUnsupportedValueType
	}
}

// scalarFromFixed64 is the 64-bit counterpart of scalarFromFixed32.
func scalarFromFixed64(vt wire.ValueType, v uint64) (any, error) {
	switch vt {
	case wire.DoubleType:
		return wire.Float64FromBits(v), nil
	case wire.Fixed64ValueType:
		return v, nil
	case wire.SFixed64Type:
		return int64(v), nil
	default:
		return nil, werrors.ErrUnsupportedValueType
	}
}
