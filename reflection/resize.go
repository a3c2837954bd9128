package reflection

import (
	"fmt"

	"github.com/dwillmer/flatbuffers/flatbuffers"
)

// largestScalarSize is the byte width of the widest scalar a schema can
// declare (int64/uint64/double). Resize deltas are rounded up to a
// multiple of this width, since that's the only granularity that is
// guaranteed not to break the alignment of any already-placed scalar
// (spec §4.D).
const largestScalarSize = 8

// resizeContext implements the single buffer-wide offset-adjustment
// pass shared by Resize, SetString, and ResizeVector: every stored
// offset that straddles the insertion point gets shifted by delta
// before the actual bytes are spliced in or out (spec §4.D,
// reflection.h's ResizeContext).
type resizeContext struct {
	schema   *Schema
	buf      *[]byte
	startptr flatbuffers.UOffsetT
	delta    int
	dagCheck []bool
}

// Resize is the general-purpose in-place buffer resize primitive. It
// walks every table reachable from the schema's root, adjusts every
// offset whose target straddles start, and then inserts or removes
// bytes at start. delta is first rounded up to a multiple of
// largestScalarSize; a delta that rounds to zero leaves *buf unchanged.
// Most callers reach this indirectly through
// SetString or ResizeVector; it's exported for callers doing bespoke
// buffer surgery of their own (e.g. a caller that wants to grow space
// ahead of a field it's about to add via a fresh builder pass).
func Resize(schema *Schema, start flatbuffers.UOffsetT, delta int, buf *[]byte) {
	mask := largestScalarSize - 1
	delta = (delta + mask) &^ mask
	if delta == 0 {
		return
	}
	rc := &resizeContext{
		schema:   schema,
		buf:      buf,
		startptr: start,
		delta:    delta,
		dagCheck: make([]bool, len(*buf)/flatbuffers.SizeUOffsetT+1),
	}
	root := flatbuffers.GetUOffsetT(*buf)
	rc.straddleU(0, root, 0)
	rc.resizeTable(schema.RootTable, &flatbuffers.Table{Bytes: *buf, Pos: root})

	if delta > 0 {
		rc.insert(start, delta)
	} else {
		rc.erase(start, -delta)
	}
}

// dag marks and tests whether the offset slot at pos has already been
// adjusted this pass. Every offset-sized location in the buffer shares
// one flat array of flags, keyed by its word index, matching
// reflection.h's DagCheck. When pos is a table's own start, the flag
// belongs to that table's vtable link: it is set once that link has
// been adjusted, and resizeTable then skips the table on later visits.
// When pos is a field's storage location, it means "this specific
// offset was already rewritten".
func (rc *resizeContext) dag(pos flatbuffers.UOffsetT) *bool {
	return &rc.dagCheck[int(pos)/flatbuffers.SizeUOffsetT]
}

// straddleU adjusts the UOffsetT stored at offsetloc by +delta if the
// range [first, second] straddles the insertion point.
func (rc *resizeContext) straddleU(first, second, offsetloc flatbuffers.UOffsetT) {
	if first <= rc.startptr && second >= rc.startptr {
		b := *rc.buf
		old := flatbuffers.GetUOffsetT(b[offsetloc:])
		flatbuffers.WriteUOffsetT(b[offsetloc:], old+flatbuffers.UOffsetT(rc.delta))
		*rc.dag(offsetloc) = true
	}
}

// straddleS adjusts the SOffsetT stored at offsetloc by -delta if the
// range [first, second] straddles the insertion point. The only
// SOffsetT in a finished buffer is a table's backward link to its
// vtable, which always moves opposite the forward offsets (hence -1,
// baked in here rather than taken as a parameter since it's the only
// direction ever used).
func (rc *resizeContext) straddleS(first, second, offsetloc flatbuffers.UOffsetT) {
	if first <= rc.startptr && second >= rc.startptr {
		b := *rc.buf
		old := flatbuffers.GetSOffsetT(b[offsetloc:])
		flatbuffers.WriteSOffsetT(b[offsetloc:], old-flatbuffers.SOffsetT(rc.delta))
		*rc.dag(offsetloc) = true
	}
}

// resizeTable walks every referential field of table, recursing into
// sub-tables, vector-of-table elements, and unions, and adjusts every
// offset it finds along the way, including the element offsets of
// vectors of strings.
func (rc *resizeContext) resizeTable(objectdef *Object, table *flatbuffers.Table) {
	if *rc.dag(table.Pos) {
		return
	}
	vtable := flatbuffers.UOffsetT(flatbuffers.SOffsetT(table.Pos) - table.GetSOffsetT(table.Pos))
	// A vtable that precedes its table can only straddle an insertion
	// point at or before the table start, where no field is read below.
	rc.straddleS(vtable, table.Pos, table.Pos)

	// Every referential field inside a table points strictly forward, so
	// once the table itself starts at or after the insertion point, none
	// of its fields can straddle it either.
	if rc.startptr <= table.Pos {
		rc.straddleS(table.Pos, vtable, table.Pos)
		return
	}

	for _, field := range objectdef.Fields {
		bt := field.Type.BaseType
		if IsScalar(bt) {
			continue
		}
		off := table.Offset(field.Offset)
		if off == 0 {
			continue
		}
		var subobjectdef *Object
		if bt == Obj {
			subobjectdef = rc.schema.Object(field.Type.Index)
			if subobjectdef.IsStruct {
				continue
			}
		}
		offsetloc := table.Pos + flatbuffers.UOffsetT(off)
		if *rc.dag(offsetloc) {
			continue
		}
		b := *rc.buf
		ref := offsetloc + flatbuffers.GetUOffsetT(b[offsetloc:])
		rc.straddleU(offsetloc, ref, offsetloc)

		switch bt {
		case Obj:
			rc.resizeTable(subobjectdef, &flatbuffers.Table{Bytes: *rc.buf, Pos: ref})
		case Vector:
			var elemobjectdef *Object
			switch field.Type.Element {
			case String:
				// Element offsets are adjusted; strings have nothing to walk.
			case Obj:
				elemobjectdef = rc.schema.Object(field.Type.Index)
				if elemobjectdef.IsStruct {
					continue
				}
			default:
				continue
			}
			b = *rc.buf
			vecLen := flatbuffers.GetUOffsetT(b[ref:])
			vecData := ref + flatbuffers.UOffsetT(flatbuffers.SizeUOffsetT)
			for i := flatbuffers.UOffsetT(0); i < vecLen; i++ {
				loc := vecData + i*flatbuffers.SizeUOffsetT
				if *rc.dag(loc) {
					continue
				}
				b = *rc.buf
				dest := loc + flatbuffers.GetUOffsetT(b[loc:])
				rc.straddleU(loc, dest, loc)
				if elemobjectdef != nil {
					rc.resizeTable(elemobjectdef, &flatbuffers.Table{Bytes: *rc.buf, Pos: dest})
				}
			}
		case Union:
			unionObj := GetUnionObject(rc.schema, objectdef, field, table)
			rc.resizeTable(unionObj, &flatbuffers.Table{Bytes: *rc.buf, Pos: ref})
		case String:
			// Leaf: no offsets inside string content to adjust.
		}
	}

	// A vtable shared through the Builder's deduplication (see
	// WriteVtable) can sit after the table. That link is adjusted last,
	// because table.Offset and GetUnionObject above still read it.
	rc.straddleS(table.Pos, vtable, table.Pos)
}

func (rc *resizeContext) insert(start flatbuffers.UOffsetT, n int) {
	old := *rc.buf
	grown := make([]byte, len(old)+n)
	copy(grown, old[:start])
	copy(grown[int(start)+n:], old[start:])
	*rc.buf = grown
}

func (rc *resizeContext) erase(start flatbuffers.UOffsetT, n int) {
	old := *rc.buf
	shrunk := make([]byte, len(old)-n)
	copy(shrunk, old[:start])
	copy(shrunk[start:], old[int(start)+n:])
	*rc.buf = shrunk
}

// SetString overwrites a string field's contents, growing or shrinking
// *buf as needed (spec §4.D). Returns false, leaving *buf untouched, if
// the field is absent: a resize never creates a field that wasn't
// already set, matching the read side's default-on-absent contract.
//
// Setting a field through the untyped path (SetAnyFieldS/I/F) never
// reaches this: those intentionally leave string fields unsupported,
// per spec §9, since a coerced "any" setter that can silently resize
// the whole buffer would be surprising.
func SetString(schema *Schema, table *flatbuffers.Table, field *Field, val string, buf *[]byte) bool {
	if field.Type.BaseType != String {
		typeMismatch(field, "a string")
	}
	off := table.Offset(field.Offset)
	if off == 0 {
		return false
	}
	offsetloc := table.Pos + flatbuffers.UOffsetT(off)
	strPos := offsetloc + flatbuffers.GetUOffsetT((*buf)[offsetloc:])
	oldLen := int(flatbuffers.GetUOffsetT((*buf)[strPos:]))
	start := strPos + flatbuffers.UOffsetT(flatbuffers.SizeUOffsetT)
	delta := len(val) - oldLen

	if delta != 0 {
		Resize(schema, start, delta, buf)
		if delta < 0 {
			// Resize removed delta rounded toward zero to a multiple of
			// largestScalarSize; zero what is left of the old contents.
			mask := largestScalarSize - 1
			removed := -((delta + mask) &^ mask)
			b := *buf
			for i := 0; i < oldLen-removed; i++ {
				b[int(start)+i] = 0
			}
		}
		flatbuffers.WriteUOffsetT((*buf)[strPos:], flatbuffers.UOffsetT(len(val)))
	}
	b := *buf
	copy(b[start:], val)
	b[int(start)+len(val)] = 0
	return true
}

// vectorElemSize returns the inline byte width of one element of a
// vector field: a fixed scalar width, or a struct's declared byte size
// for a vector of structs.
func vectorElemSize(schema *Schema, field *Field) int {
	if field.Type.Element == Obj {
		return schema.Object(field.Type.Index).ByteSize
	}
	return TypeSize(field.Type.Element)
}

// ResizeVector changes a vector field's element count, growing or
// shrinking *buf as needed (spec §4.D). New elements are filled with
// fill, which must be exactly one element wide: fill's raw bytes are
// copied in as-is, which works uniformly for scalar elements (pass
// their bit pattern) and inline struct elements (pass the struct's raw
// bytes) alike. Shrinking truncates from the end and leaves the freed
// bytes as unreclaimed garbage, same as SetString and per spec §1
// Non-goals.
//
// Returns false, leaving *buf untouched, if the field is absent.
func ResizeVector(schema *Schema, table *flatbuffers.Table, field *Field, newLen int, fill []byte, buf *[]byte) bool {
	if field.Type.BaseType != Vector {
		typeMismatch(field, "a vector")
	}
	off := table.Offset(field.Offset)
	if off == 0 {
		return false
	}
	elemSize := vectorElemSize(schema, field)
	if len(fill) != elemSize {
		panic(fmt.Errorf("reflection: fill value is %d bytes, want %d for field %q", len(fill), elemSize, field.Name))
	}

	offsetloc := table.Pos + flatbuffers.UOffsetT(off)
	vecPos := offsetloc + flatbuffers.GetUOffsetT((*buf)[offsetloc:])
	oldLen := int(flatbuffers.GetUOffsetT((*buf)[vecPos:]))
	deltaElems := newLen - oldLen
	deltaBytes := deltaElems * elemSize
	start := vecPos + flatbuffers.UOffsetT(flatbuffers.SizeUOffsetT) + flatbuffers.UOffsetT(oldLen*elemSize)
	if deltaBytes < 0 {
		// Shrinking removes bytes from the vector's own tail, so they are
		// taken from the end of the elements that remain.
		start = vecPos + flatbuffers.UOffsetT(flatbuffers.SizeUOffsetT) + flatbuffers.UOffsetT(newLen*elemSize)
	}

	if deltaBytes != 0 {
		Resize(schema, start, deltaBytes, buf)
		flatbuffers.WriteUOffsetT((*buf)[vecPos:], flatbuffers.UOffsetT(newLen))
		b := *buf
		for i := 0; i < deltaElems; i++ {
			loc := int(start) + i*elemSize
			copy(b[loc:loc+elemSize], fill)
		}
	}
	return true
}
