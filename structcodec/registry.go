// Package structcodec is a reference dispatch.MessageType adapter over
// plain Go structs, so the core codec can be exercised without a code
// generator. Fields are mapped to wire numbers with a struct tag:
//
//	type Point struct {
//	    X int32 `wire:"1,int32"`
//	    Y int32 `wire:"2,int32"`
//	}
//
// Repeated fields add ",rep" and are represented as Go slices; nested
// messages use "message" and may be a pointer-to-struct (singular) or a
// slice of pointer-to-struct (repeated). A single field tagged
// `wire:",unknown"`, of type []UnknownField, receives any field numbers the
// struct doesn't declare.
//
// This mirrors the shape of the teacher's own proto.StructProperties
// (struct-tag-driven field table, compiled once per reflect.Type and
// cached), adapted to this module's FieldInfo/ValueType vocabulary instead
// of the legacy "wire,tag,opt,name=..." tag grammar.
package structcodec

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	reflect "github.com/goccy/go-reflect"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wirepb/wirepb/dispatch"
	"github.com/wirepb/wirepb/wire"
)

// UnknownField is one undeclared field captured by a struct's "unknown"
// bucket field.
type UnknownField struct {
	Number wire.Number
	Raw    []byte
}

// fieldEntry is the compiled form of one struct field's wire tag.
type fieldEntry struct {
	number    wire.Number
	valueType wire.ValueType
	repeated  bool
	index     int // reflect.StructField index within the struct
	elemType  reflect.Type
}

// compiledType is the field table for one struct type: by declared field
// number, for dispatch lookups, and in declaration order, for encoding.
type compiledType struct {
	rt           reflect.Type
	byNumber     map[wire.Number]*fieldEntry
	inOrder      []*fieldEntry
	unknownIndex int // struct field index of the []UnknownField bucket, or -1
}

// Registry compiles and caches per-struct-type field tables so repeated
// Unmarshal/Marshal calls against the same Go type don't re-walk its struct
// tags. Create one with NewRegistry; the zero value has no cache and is not
// usable.
type Registry struct {
	cache  *lru.Cache[reflect.Type, *compiledType]
	nested sync.Map // reflect.Type -> *nestedOf, lazy MessageType resolution for message-valued fields
}

// NewRegistry creates a Registry whose compiled-type cache holds up to size
// entries (an LRU eviction policy bounds memory when a process round-trips
// many distinct generated types; most programs only ever register a
// handful and never evict).
func NewRegistry(size int) *Registry {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[reflect.Type, *compiledType](size)
	if err != nil {
		// Only returns an error for a non-positive size, which we've just
		// guarded against above.
		panic(err)
	}
	return &Registry{cache: c}
}

// For returns a dispatch.MessageType (and dispatch.FieldIterator) over
// structs of the given struct (or pointer-to-struct) type, compiling and caching its
// field table on first use.
func (r *Registry) For(rt reflect.Type) (*Adapter, error) {
	ct, err := r.compile(rt)
	if err != nil {
		return nil, err
	}
	return &Adapter{reg: r, ct: ct}, nil
}

func (r *Registry) compile(rt reflect.Type) (*compiledType, error) {
	structType := rt
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("structcodec: %s is not a struct or pointer to struct", rt)
	}
	if ct, ok := r.cache.Get(structType); ok {
		return ct, nil
	}

	ct := &compiledType{
		rt:           structType,
		byNumber:     map[wire.Number]*fieldEntry{},
		unknownIndex: -1,
	}
	for i := 0; i < structType.NumField(); i++ {
		sf := structType.Field(i)
		tag, ok := sf.Tag.Lookup("wire")
		if !ok {
			continue
		}
		if tag == ",unknown" {
			ct.unknownIndex = i
			continue
		}
		entry, err := parseFieldTag(tag, i, sf.Type)
		if err != nil {
			return nil, fmt.Errorf("structcodec: %s.%s: %w", structType.Name(), sf.Name, err)
		}
		ct.byNumber[entry.number] = entry
		ct.inOrder = append(ct.inOrder, entry)
	}
	r.cache.Add(structType, ct)
	return ct, nil
}

// parseFieldTag parses "<number>,<type>[,rep]".
func parseFieldTag(tag string, index int, ft reflect.Type) (*fieldEntry, error) {
	parts := strings.Split(tag, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed wire tag %q", tag)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("malformed field number in wire tag %q: %w", tag, err)
	}
	vt, err := valueTypeByName(parts[1])
	if err != nil {
		return nil, err
	}
	repeated := false
	for _, opt := range parts[2:] {
		if opt == "rep" {
			repeated = true
		}
	}

	elemType := ft
	if repeated {
		if ft.Kind() != reflect.Slice {
			return nil, fmt.Errorf("field tagged rep must be a slice, got %s", ft)
		}
		elemType = ft.Elem()
	}
	if vt == wire.MessageValueType && elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	return &fieldEntry{
		number:    wire.Number(num),
		valueType: vt,
		repeated:  repeated,
		index:     index,
		elemType:  elemType,
	}, nil
}

func valueTypeByName(name string) (wire.ValueType, error) {
	switch name {
	case "double":
		return wire.DoubleType, nil
	case "float":
		return wire.FloatType, nil
	case "int32":
		return wire.Int32Type, nil
	case "int64":
		return wire.Int64Type, nil
	case "uint32":
		return wire.UInt32Type, nil
	case "uint64":
		return wire.UInt64Type, nil
	case "sint32":
		return wire.SInt32Type, nil
	case "sint64":
		return wire.SInt64Type, nil
	case "fixed32":
		return wire.Fixed32ValueType, nil
	case "fixed64":
		return wire.Fixed64ValueType, nil
	case "sfixed32":
		return wire.SFixed32Type, nil
	case "sfixed64":
		return wire.SFixed64Type, nil
	case "bool":
		return wire.BoolType, nil
	case "string":
		return wire.StringType, nil
	case "bytes":
		return wire.BytesValueType, nil
	case "enum":
		return wire.EnumType, nil
	case "message":
		return wire.MessageValueType, nil
	default:
		return wire.Unknown, fmt.Errorf("unrecognized wire value type %q", name)
	}
}

var _ dispatch.MessageType = (*Adapter)(nil)
