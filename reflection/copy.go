package reflection

import (
	"fmt"

	"github.com/dwillmer/flatbuffers/flatbuffers"
)

// slotIndex converts a field's vtable byte offset (as stored on Field,
// and as Table.Offset/MutateXxxSlot expect on a finished buffer) into
// the 0-based field index Builder.Slot/PrependXxxSlot expect while a
// vtable is still under construction. The two numbering schemes coexist
// because a Builder's in-progress vtable is a plain []UOffsetT indexed
// by field position, flattened into real byte offsets only by
// WriteVtable at EndObject time.
func slotIndex(offset flatbuffers.VOffsetT) int {
	return int(offset)/flatbuffers.SizeVOffsetT - flatbuffers.VtableMetadataFields
}

// CopyTable duplicates table, an instance of objectdef, into builder,
// recursively copying every present string, sub-table, vector, and
// union field (spec §4.E, reflection.h's CopyTable/CopyInline). Only
// fields actually present in table are copied; absent fields stay
// absent in the copy, exactly as a hand-written builder invocation
// would leave them.
//
// Copying does not preserve sharing: if table's reachable object graph
// is a DAG, the copy turns it into a tree (each reference gets its own
// independent copy), per spec §1 Non-goals. Builder must not already be
// mid-object; CopyTable manages its own nesting via StartObject/
// EndObject, and recurses into itself for sub-objects, so this holds
// for every call including recursive ones.
func CopyTable(builder *flatbuffers.Builder, schema *Schema, objectdef *Object, table *flatbuffers.Table) flatbuffers.UOffsetT {
	if objectdef.IsStruct {
		return builder.PrependStructBytes(structBytes(table, objectdef), objectdef.MinAlign)
	}

	present := make([]bool, len(objectdef.Fields))
	childOffsets := make([]flatbuffers.UOffsetT, len(objectdef.Fields))

	// Pass 1: build every child (string, sub-table, vector, union)
	// before starting this object. Builder writes back to front, so a
	// nested CreateString/CopyTable call made *after* StartObject would
	// land inside this object's own half-built byte range.
	for i, field := range objectdef.Fields {
		off := table.Offset(field.Offset)
		if off == 0 {
			continue
		}
		present[i] = true

		switch field.Type.BaseType {
		case String:
			s, _ := GetFieldS(table, field)
			childOffsets[i] = builder.CreateString(s)
		case Obj:
			subdef := schema.Object(field.Type.Index)
			if subdef.IsStruct {
				continue // copied inline in pass 2, no separate offset
			}
			sub, _ := GetFieldT(table, field)
			childOffsets[i] = CopyTable(builder, schema, subdef, sub)
		case Union:
			subdef := GetUnionObject(schema, objectdef, field, table)
			sub, _ := GetFieldT(table, field)
			childOffsets[i] = CopyTable(builder, schema, subdef, sub)
		case Vector:
			childOffsets[i] = copyVector(builder, schema, field, table)
		}
	}

	// Pass 2: emit the table, consuming each child offset in field
	// order as we go.
	builder.StartObject(len(objectdef.Fields))
	for i, field := range objectdef.Fields {
		if !present[i] {
			continue
		}
		switch field.Type.BaseType {
		case Obj:
			subdef := schema.Object(field.Type.Index)
			if subdef.IsStruct {
				block := builder.PrependStructBytes(structFieldBytes(table, field, subdef), subdef.MinAlign)
				builder.PrependStructSlot(slotIndex(field.Offset), block, 0)
				continue
			}
			builder.PrependUOffsetTSlot(slotIndex(field.Offset), childOffsets[i], 0)
		case Union, String, Vector:
			builder.PrependUOffsetTSlot(slotIndex(field.Offset), childOffsets[i], 0)
		default:
			copyScalarField(builder, table, field)
		}
	}
	return builder.EndObject()
}

// copyScalarField writes a present scalar field's current value
// unconditionally, bypassing the PrependXxxSlot family's default-elide
// optimization: a field that was explicitly present in the source
// (even holding its type's default value) must stay explicitly present
// in the copy, matching reflection.h's CopyInline, which always tracks
// the field regardless of value.
func copyScalarField(builder *flatbuffers.Builder, table *flatbuffers.Table, field *Field) {
	slot := slotIndex(field.Offset)
	switch field.Type.BaseType {
	case Bool:
		builder.PrependBool(GetFieldBool(table, field))
	case Byte:
		builder.PrependInt8(GetFieldByte(table, field))
	case UByte, UType:
		builder.PrependUint8(GetFieldUByte(table, field))
	case Short:
		builder.PrependInt16(GetFieldShort(table, field))
	case UShort:
		builder.PrependUint16(GetFieldUShort(table, field))
	case Int:
		builder.PrependInt32(GetFieldInt(table, field))
	case UInt:
		builder.PrependUint32(GetFieldUInt(table, field))
	case Long:
		builder.PrependInt64(GetFieldLong(table, field))
	case ULong:
		builder.PrependUint64(GetFieldULong(table, field))
	case Float:
		builder.PrependFloat32(GetFieldFloat(table, field))
	case Double:
		builder.PrependFloat64(GetFieldDouble(table, field))
	default:
		panic(fmt.Errorf("reflection: field %q has unexpected scalar type %d", field.Name, field.Type.BaseType))
	}
	builder.Slot(slot)
}

// copyVector rebuilds a vector field's contents into builder, dispatching
// on the declared element type: strings and non-struct objects recurse
// element by element; scalars and structs copy as one raw block.
func copyVector(builder *flatbuffers.Builder, schema *Schema, field *Field, table *flatbuffers.Table) flatbuffers.UOffsetT {
	off := flatbuffers.UOffsetT(table.Offset(field.Offset))
	n := table.VectorLen(off)
	start := table.Vector(off)

	switch field.Type.Element {
	case String:
		elems := make([]flatbuffers.UOffsetT, n)
		for i := 0; i < n; i++ {
			pos := start + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
			elems[i] = builder.CreateString(table.String(pos))
		}
		return builder.CreateOffsetVector(elems)
	case Obj:
		elemdef := schema.Object(field.Type.Index)
		if elemdef.IsStruct {
			size := elemdef.ByteSize
			data := table.Bytes[start : int(start)+n*size]
			return builder.CreateRawVector(data, size)
		}
		elems := make([]flatbuffers.UOffsetT, n)
		for i := 0; i < n; i++ {
			pos := start + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
			target := pos + flatbuffers.GetUOffsetT(table.Bytes[pos:])
			sub := &flatbuffers.Table{Bytes: table.Bytes, Pos: target}
			elems[i] = CopyTable(builder, schema, elemdef, sub)
		}
		return builder.CreateOffsetVector(elems)
	default:
		size := TypeSize(field.Type.Element)
		data := table.Bytes[start : int(start)+n*size]
		return builder.CreateRawVector(data, size)
	}
}

// structBytes returns the raw backing bytes of a struct object.
func structBytes(table *flatbuffers.Table, objectdef *Object) []byte {
	return table.Bytes[table.Pos : int(table.Pos)+objectdef.ByteSize]
}

// structFieldBytes returns the raw backing bytes of a struct-typed field
// stored inline inside table. Unlike String/Obj/Union/Vector fields, a
// struct field's vtable slot points directly at the struct's bytes: no
// forward-offset indirection to chase.
func structFieldBytes(table *flatbuffers.Table, field *Field, subdef *Object) []byte {
	off := table.Offset(field.Offset)
	pos := table.Pos + flatbuffers.UOffsetT(off)
	return table.Bytes[pos : int(pos)+subdef.ByteSize]
}
