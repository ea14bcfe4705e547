package cursor

import (
	"github.com/wirepb/wirepb/werrors"
	"github.com/wirepb/wirepb/wire"
)

// SkipGroup consumes a pre-proto3 group payload: it was just positioned
// after a StartGroup tag for startNum, and reads (and discards) fields
// until the matching EndGroup tag is found. Nested StartGroup/EndGroup
// pairs are skipped recursively, honoring the decoder's recursion limit.
func (d *Decoder) SkipGroup(startNum wire.Number) error {
	if err := d.EnterRecursion(); err != nil {
		return err
	}
	defer d.ExitRecursion()

	for {
		num, typ, err := d.ReadTag()
		if err != nil {
			return err
		}
		if num == 0 {
			return werrors.ErrTruncatedMessage
		}
		switch typ {
		case wire.EndGroupType:
			if num != startNum {
				return werrors.ErrMalformedGroup
			}
			return nil
		case wire.StartGroupType:
			if err := d.SkipGroup(num); err != nil {
				return err
			}
		default:
			if err := d.skipFieldValue(typ); err != nil {
				return err
			}
		}
	}
}

// skipFieldValue consumes (and discards) the payload of a single field
// value given its wire type, without regard for any declared value type.
func (d *Decoder) skipFieldValue(typ wire.Type) error {
	switch typ {
	case wire.VarintType:
		_, err := d.ReadVarint64()
		return err
	case wire.Fixed32Type:
		_, err := d.ReadFixed32()
		return err
	case wire.Fixed64Type:
		_, err := d.ReadFixed64()
		return err
	case wire.BytesType:
		_, err := d.ReadBytes()
		return err
	default:
		return werrors.ErrMalformedGroup
	}
}
