package structcodec

import (
	"sync"

	reflect "github.com/goccy/go-reflect"

	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/wire"
)

// nestedOf lazily resolves and caches the dispatch.MessageType for a
// message-valued field's element type. Resolution is deferred until first
// use (rather than done eagerly while compiling the struct tag) so that
// self-referential or mutually-referential message types don't recurse
// forever while being compiled.
type nestedOf struct {
	once    sync.Once
	adapter *Adapter
	err     error
}

func resolveNested(reg *Registry, elemType reflect.Type) (*Adapter, error) {
	v, _ := reg.nested.LoadOrStore(elemType, &nestedOf{})
	n := v.(*nestedOf)
	n.once.Do(func() {
		n.adapter, n.err = reg.For(elemType)
	})
	return n.adapter, n.err
}

// Adapter implements dispatch.MessageType, dispatch.FieldIterator, and
// dispatch.UnknownRecorder over one compiled struct type.
type Adapter struct {
	reg *Registry
	ct  *compiledType
}

// NewMessage allocates a fresh zero-valued instance of the adapted struct,
// returned as a pointer.
func (a *Adapter) NewMessage() any {
	return reflect.New(a.ct.rt).Interface()
}

// FieldByNumber reports the compiled FieldInfo for num, or the zero value
// (Unknown) if the struct declared no field for it.
func (a *Adapter) FieldByNumber(num wire.Number) dispatch.FieldInfo {
	entry, ok := a.ct.byNumber[num]
	if !ok {
		return dispatch.FieldInfo{}
	}
	info := dispatch.FieldInfo{ValueType: entry.valueType, Repeated: entry.repeated}
	if entry.valueType == wire.MessageValueType {
		nested, err := resolveNested(a.reg, entry.elemType)
		if err != nil {
			return dispatch.FieldInfo{}
		}
		info.MessageType = nested
	}
	return info
}

// ConsumeField stores value into the struct field declared for num,
// appending to the backing slice when the field is repeated.
func (a *Adapter) ConsumeField(message any, num wire.Number, value any) {
	entry, ok := a.ct.byNumber[num]
	if !ok {
		return
	}
	sv := structValue(message)
	fv := sv.Field(entry.index)
	rv := reflect.ValueOf(value)
	if entry.repeated {
		fv.Set(reflect.Append(fv, rv))
		return
	}
	fv.Set(rv)
}

// CompleteMessage is the identity transform: struct-tagged messages need no
// finalization step.
func (a *Adapter) CompleteMessage(message any) any { return message }

// IgnoreUnknown reports false whenever the struct declares an unknown-field
// bucket (so RecordUnknown gets a chance to fill it), true otherwise
// (undeclared fields are silently discarded).
func (a *Adapter) IgnoreUnknown() bool { return a.ct.unknownIndex < 0 }

// RecordUnknown appends an UnknownField entry to the struct's unknown-field
// bucket, if one is declared.
func (a *Adapter) RecordUnknown(message any, num wire.Number, raw []byte) {
	if a.ct.unknownIndex < 0 {
		return
	}
	sv := structValue(message)
	fv := sv.Field(a.ct.unknownIndex)
	cp := append([]byte(nil), raw...)
	fv.Set(reflect.Append(fv, reflect.ValueOf(UnknownField{Number: num, Raw: cp})))
}

// IterateFields implements dispatch.FieldIterator: it walks the struct's
// declared fields in struct declaration order, emitting once per element of a repeated
// field and once for a populated singular field. A singular scalar field
// holding its Go zero value is skipped, matching proto3 implicit-presence
// semantics; singular message fields are emitted only when non-nil.
func (a *Adapter) IterateFields(message any, emit func(num wire.Number, value any) error) error {
	sv := structValue(message)
	for _, entry := range a.ct.inOrder {
		fv := sv.Field(entry.index)
		if entry.repeated {
			for i := 0; i < fv.Len(); i++ {
				if err := emit(entry.number, fv.Index(i).Interface()); err != nil {
					return err
				}
			}
			continue
		}
		if entry.valueType == wire.MessageValueType {
			if fv.IsNil() {
				continue
			}
			if err := emit(entry.number, fv.Interface()); err != nil {
				return err
			}
			continue
		}
		if fv.IsZero() {
			continue
		}
		if err := emit(entry.number, fv.Interface()); err != nil {
			return err
		}
	}
	return nil
}

// structValue dereferences message (a pointer to the adapted struct, as
// produced by NewMessage) down to its addressable struct Value.
func structValue(message any) reflect.Value {
	return reflect.ValueOf(message).Elem()
}

var (
	_ dispatch.UnknownRecorder = (*Adapter)(nil)
	_ dispatch.FieldIterator   = (*Adapter)(nil)
)
