package reflection

import (
	"strconv"
	"strings"

	"github.com/dwillmer/flatbuffers/flatbuffers"
)

// DebugString renders table, an instance of objectdef, as a best-effort
// human-readable string: "Name { field: value, ... }", type name
// prefixed, with nested tables, structs, vectors, and unions expanded
// recursively (spec §4.C).
//
// This is NOT a JSON encoder: string values are written with surrounding
// quotes but are not escaped, and there is no attempt to match JSON's
// number grammar or produce parseable output, per spec §1 Non-goals
// ("no JSON compliance in debug strings"). It exists for inspection,
// logging, and test assertions, not interchange.
func DebugString(schema *Schema, objectdef *Object, table *flatbuffers.Table) string {
	var sb strings.Builder
	sb.WriteString(objectdef.Name)
	sb.WriteString(" { ")
	first := true
	for _, field := range objectdef.Fields {
		if !IsScalar(field.Type.BaseType) && table.Offset(field.Offset) == 0 {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(field.Name)
		sb.WriteString(": ")
		sb.WriteString(debugFieldValue(schema, objectdef, field, table))
	}
	sb.WriteString(" }")
	return sb.String()
}

func debugFieldValue(schema *Schema, objectdef *Object, field *Field, table *flatbuffers.Table) string {
	switch field.Type.BaseType {
	case Float, Double:
		return formatReal(GetAnyFieldF(table, field))
	case String:
		s, _ := GetFieldS(table, field)
		return "\"" + s + "\""
	case Obj:
		return formatObjField(schema, field, table)
	case Union:
		return formatUnionField(schema, objectdef, field, table)
	case Vector:
		return formatVectorField(schema, field, table)
	default:
		return strconv.FormatInt(GetAnyFieldI(table, field), 10)
	}
}

// formatReal renders a float/double the way GetAnyFieldS does: Go's
// shortest round-tripping decimal form, not JSON's number grammar.
func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatObjField renders a table- or struct-typed field, prefixed with
// its resolved type name (spec §4.C's "Name { field: value, ... }"
// contract). Struct fields are stored inline (no vtable indirection),
// so they're read directly at their fixed byte offset rather than
// through GetFieldT; DebugString already adds the table-case prefix, so
// only the struct case needs it added here directly.
func formatObjField(schema *Schema, field *Field, table *flatbuffers.Table) string {
	subdef := schema.Object(field.Type.Index)
	if subdef.IsStruct {
		off := table.Offset(field.Offset)
		pos := table.Pos + flatbuffers.UOffsetT(off)
		return subdef.Name + " " + debugStructString(schema, subdef, table.Bytes, pos)
	}
	sub, ok := GetFieldT(table, field)
	if !ok {
		return "null"
	}
	return DebugString(schema, subdef, sub)
}

// formatUnionField renders a union field, resolving its concrete type
// via the sibling "_type" tag field. DebugString's own type-name prefix
// produces the "TypeB { ... }" form spec §4.C's boundary scenario #5
// requires for a resolved union value.
func formatUnionField(schema *Schema, objectdef *Object, field *Field, table *flatbuffers.Table) string {
	subdef := GetUnionObject(schema, objectdef, field, table)
	sub, ok := GetFieldT(table, field)
	if !ok {
		return "null"
	}
	return DebugString(schema, subdef, sub)
}

func formatVectorField(schema *Schema, field *Field, table *flatbuffers.Table) string {
	off := flatbuffers.UOffsetT(table.Offset(field.Offset))
	n := table.VectorLen(off)
	start := table.Vector(off)

	var sb strings.Builder
	sb.WriteString("[ ")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch field.Type.Element {
		case String:
			pos := start + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
			sb.WriteString("\"" + table.String(pos) + "\"")
		case Obj:
			elemdef := schema.Object(field.Type.Index)
			if elemdef.IsStruct {
				pos := start + flatbuffers.UOffsetT(i*elemdef.ByteSize)
				sb.WriteString(debugStructString(schema, elemdef, table.Bytes, pos))
			} else {
				pos := start + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
				target := pos + flatbuffers.GetUOffsetT(table.Bytes[pos:])
				sub := &flatbuffers.Table{Bytes: table.Bytes, Pos: target}
				sb.WriteString(DebugString(schema, elemdef, sub))
			}
		case Float:
			pos := start + flatbuffers.UOffsetT(i*TypeSize(Float))
			sb.WriteString(formatReal(float64(flatbuffers.GetFloat32(table.Bytes[pos:]))))
		case Double:
			pos := start + flatbuffers.UOffsetT(i*TypeSize(Double))
			sb.WriteString(formatReal(flatbuffers.GetFloat64(table.Bytes[pos:])))
		default:
			size := TypeSize(field.Type.Element)
			pos := start + flatbuffers.UOffsetT(i*size)
			sb.WriteString(strconv.FormatInt(readScalarAt(table.Bytes, pos, field.Type.Element), 10))
		}
	}
	sb.WriteString(" ]")
	return sb.String()
}

// debugStructString renders a struct value at an absolute position:
// structs have no vtable, so every field is read at a fixed byte offset
// relative to pos rather than looked up by slot.
func debugStructString(schema *Schema, objectdef *Object, bytes []byte, pos flatbuffers.UOffsetT) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, field := range objectdef.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(field.Name)
		sb.WriteString(": ")
		fieldPos := pos + flatbuffers.UOffsetT(field.Offset)
		switch field.Type.BaseType {
		case Float:
			sb.WriteString(formatReal(float64(flatbuffers.GetFloat32(bytes[fieldPos:]))))
		case Double:
			sb.WriteString(formatReal(flatbuffers.GetFloat64(bytes[fieldPos:])))
		case Obj:
			subdef := schema.Object(field.Type.Index)
			sb.WriteString(debugStructString(schema, subdef, bytes, fieldPos))
		default:
			sb.WriteString(strconv.FormatInt(readScalarAt(bytes, fieldPos, field.Type.BaseType), 10))
		}
	}
	sb.WriteString(" }")
	return sb.String()
}

// readScalarAt reads a scalar of the given base type at an absolute
// byte position, widened to an int64 (sign-extended for signed types,
// zero-extended for unsigned ones). Used for raw inline reads
// (struct fields, vector elements) that bypass the vtable-based slot
// accessors entirely.
func readScalarAt(bytes []byte, pos flatbuffers.UOffsetT, bt BaseType) int64 {
	switch bt {
	case Bool:
		if flatbuffers.GetBool(bytes[pos:]) {
			return 1
		}
		return 0
	case Byte:
		return int64(flatbuffers.GetInt8(bytes[pos:]))
	case UByte, UType:
		return int64(flatbuffers.GetUint8(bytes[pos:]))
	case Short:
		return int64(flatbuffers.GetInt16(bytes[pos:]))
	case UShort:
		return int64(flatbuffers.GetUint16(bytes[pos:]))
	case Int:
		return int64(flatbuffers.GetInt32(bytes[pos:]))
	case UInt:
		return int64(flatbuffers.GetUint32(bytes[pos:]))
	case Long:
		return flatbuffers.GetInt64(bytes[pos:])
	case ULong:
		return int64(flatbuffers.GetUint64(bytes[pos:]))
	default:
		return 0
	}
}
