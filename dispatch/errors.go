package dispatch

import "errors"

// errNotIterable and errUnsupportedFieldType are programmer errors (a
// MessageType/FieldInfo mismatch), not wire-format errors, so they live
// here rather than in werrors's decode-taxonomy.
var (
	errNotIterable          = errors.New("dispatch: MessageType does not implement FieldIterator")
	errUnsupportedFieldType = errors.New("dispatch: field has no supported wire encoding")
)
