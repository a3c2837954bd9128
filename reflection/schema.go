package reflection

import (
	"fmt"

	"github.com/dwillmer/flatbuffers/flatbuffers"
)

// Field describes one member of an Object: its name, declared type, its
// byte position (vtable slot for a table field, fixed struct-relative
// byte offset for a struct field), and its declared defaults.
//
// Offset is pre-resolved to whatever flatbuffers.Table.Offset expects
// for table fields (4 + 2*index in the conventional vtable layout); for
// struct fields it is the direct byte offset within the struct. This
// matches how a real compiled schema already stores reflection.Field.
type Field struct {
	Name           string
	Type           Type
	Offset         flatbuffers.VOffsetT
	DefaultInteger int64
	DefaultReal    float64
}

// Object describes a table or struct layout: its name, whether it's a
// struct, its minimum alignment, its byte size (structs only), and its
// fields in declaration order.
type Object struct {
	Name     string
	IsStruct bool
	MinAlign int
	ByteSize int // structs only
	Fields   []*Field

	byName map[string]*Field
}

// NewObject builds an Object and its name-indexed field lookup table.
// Fields should be passed in schema declaration order (the order their
// vtable slots / struct offsets increase).
func NewObject(name string, isStruct bool, minAlign, byteSize int, fields []*Field) *Object {
	o := &Object{
		Name:     name,
		IsStruct: isStruct,
		MinAlign: minAlign,
		ByteSize: byteSize,
		Fields:   fields,
		byName:   make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		o.byName[f.Name] = f
	}
	return o
}

// FieldByName looks up a field by name in O(1).
func (o *Object) FieldByName(name string) (*Field, bool) {
	f, ok := o.byName[name]
	return f, ok
}

// EnumVal is one member of an Enum: its name, its integer key, and, for
// union enums, the Object the tag selects.
type EnumVal struct {
	Name   string
	Value  int64
	Object *Object // non-nil only for union enum values
}

// Enum describes a set of named integer values, optionally a union
// (where each value additionally names an Object).
type Enum struct {
	Name    string
	IsUnion bool
	Values  []*EnumVal

	byKey map[int64]*EnumVal
}

// NewEnum builds an Enum and its key-indexed value lookup table.
func NewEnum(name string, isUnion bool, values []*EnumVal) *Enum {
	e := &Enum{
		Name:    name,
		IsUnion: isUnion,
		Values:  values,
		byKey:   make(map[int64]*EnumVal, len(values)),
	}
	for _, v := range values {
		e.byKey[v.Value] = v
	}
	return e
}

// ValueByKey looks up an enum value by its integer key in O(1).
func (e *Enum) ValueByKey(key int64) (*EnumVal, bool) {
	v, ok := e.byKey[key]
	return v, ok
}

// Schema is the immutable, passive description of every Object and Enum
// reachable from a root table (spec §3 "Schema", §4.A). It is built once
// by the caller (hand-written, or decoded elsewhere from a compiled
// .bfbs file — that decoder is out of scope per spec §1) and then held
// read-only for the life of the program.
type Schema struct {
	Objects   []*Object
	Enums     []*Enum
	RootTable *Object

	objByName map[string]int
	enumByName map[string]int
}

// NewSchema builds a Schema and its name-indexed object/enum lookup
// tables. rootIndex selects RootTable from objects.
func NewSchema(objects []*Object, enums []*Enum, rootIndex int) *Schema {
	s := &Schema{
		Objects:    objects,
		Enums:      enums,
		objByName:  make(map[string]int, len(objects)),
		enumByName: make(map[string]int, len(enums)),
	}
	for i, o := range objects {
		s.objByName[o.Name] = i
	}
	for i, e := range enums {
		s.enumByName[e.Name] = i
	}
	if rootIndex >= 0 {
		s.RootTable = objects[rootIndex]
	}
	return s
}

// Object returns the i'th object. Panics on an out-of-range index: an
// index into Objects/Enums comes from a Type built against this same
// Schema, so an out-of-range value is a precondition violation, not a
// recoverable condition (spec §7).
func (s *Schema) Object(i int) *Object {
	if i < 0 || i >= len(s.Objects) {
		panic(fmt.Errorf("reflection: object index %d out of range [0,%d)", i, len(s.Objects)))
	}
	return s.Objects[i]
}

// Enum returns the i'th enum. See Object for the panic policy.
func (s *Schema) Enum(i int) *Enum {
	if i < 0 || i >= len(s.Enums) {
		panic(fmt.Errorf("reflection: enum index %d out of range [0,%d)", i, len(s.Enums)))
	}
	return s.Enums[i]
}

// ObjectByName looks up an object by its schema name.
func (s *Schema) ObjectByName(name string) (*Object, bool) {
	i, ok := s.objByName[name]
	if !ok {
		return nil, false
	}
	return s.Objects[i], true
}

// EnumByName looks up an enum by its schema name.
func (s *Schema) EnumByName(name string) (*Enum, bool) {
	i, ok := s.enumByName[name]
	if !ok {
		return nil, false
	}
	return s.Enums[i], true
}
