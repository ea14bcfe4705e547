package proto

import (
	"github.com/wirepb/wirepb/cursor"
	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/wireout"
)

// Marshal encodes message (as described by mt) to a freshly allocated byte
// slice.
func Marshal(mt dispatch.MessageType, message any) ([]byte, error) {
	enc := wireout.ToBuffer(0)
	if err := dispatch.Marshal(enc, mt, message); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// Unmarshal decodes b as a single message described by mt.
func Unmarshal(b []byte, mt dispatch.MessageType) (any, error) {
	dec := cursor.FromBytes(b, cursor.Options{})
	return dispatch.Unmarshal(dec, mt)
}

// UnmarshalOptions mirrors the teacher's proto.UnmarshalOptions: a
// plain-struct options value (not functional options) set before use, per
// this module's configuration convention.
type UnmarshalOptions struct {
	RecursionLimit int
	SizeLimit      int
}

func (o UnmarshalOptions) toCursorOptions() cursor.Options {
	return cursor.Options{RecursionLimit: o.RecursionLimit, SizeLimit: o.SizeLimit}
}

// Unmarshal decodes b as a single message described by mt, honoring o's
// limits.
func (o UnmarshalOptions) Unmarshal(b []byte, mt dispatch.MessageType) (any, error) {
	dec := cursor.FromBytes(b, o.toCursorOptions())
	return dispatch.Unmarshal(dec, mt)
}
