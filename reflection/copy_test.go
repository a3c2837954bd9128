package reflection_test

import (
	"testing"

	"github.com/dwillmer/flatbuffers/flatbuffers"
	"github.com/dwillmer/flatbuffers/reflection"
)

func TestCopyTableRoundTrip(t *testing.T) {
	schema := monsterSchema()
	src := flatbuffers.NewBuilder(0)
	off := buildMonster(src, "Orc", 80, []byte{1, 2, 3, 4}, 7, 3, []string{"Sword", "Axe"}, []int16{50, 30})
	src.Finish(off)
	srcBuf := src.FinishedBytes()
	srcTable := rootTable(srcBuf)
	monster, _ := schema.ObjectByName("Monster")

	dst := flatbuffers.NewBuilder(0)
	copyOff := reflection.CopyTable(dst, schema, monster, srcTable)
	dst.Finish(copyOff)
	dstBuf := dst.FinishedBytes()
	dstTable := rootTable(dstBuf)

	if got := reflection.DebugString(schema, monster, dstTable); got != reflection.DebugString(schema, monster, srcTable) {
		t.Fatalf("copy debug string mismatch:\n got: %s\nwant: %s", got, reflection.DebugString(schema, monster, srcTable))
	}
}

func TestCopyTablePreservesExplicitDefault(t *testing.T) {
	// hp's declared default is 100; write it explicitly anyway and make
	// sure the copy still has it present rather than eliding it, since
	// the field was present (not absent) in the source.
	schema := monsterSchema()
	src := flatbuffers.NewBuilder(0)
	nameOff := src.CreateString("Grunt")
	src.StartObject(7)
	src.PrependInt16(100)
	src.Slot(1) // hp, bypassing the default-elide Slot family deliberately
	src.PrependUOffsetTSlot(0, nameOff, 0)
	off := src.EndObject()
	src.Finish(off)
	srcBuf := src.FinishedBytes()
	srcTable := rootTable(srcBuf)
	monster, _ := schema.ObjectByName("Monster")
	hpField, _ := monster.FieldByName("hp")

	if off := srcTable.Offset(hpField.Offset); off == 0 {
		t.Fatalf("test setup failed: hp not present in source")
	}

	dst := flatbuffers.NewBuilder(0)
	copyOff := reflection.CopyTable(dst, schema, monster, srcTable)
	dst.Finish(copyOff)
	dstTable := rootTable(dst.FinishedBytes())

	if off := dstTable.Offset(hpField.Offset); off == 0 {
		t.Fatalf("hp absent in copy; explicit default-valued field should stay present")
	}
	if got := reflection.GetFieldShort(dstTable, hpField); got != 100 {
		t.Fatalf("copied hp = %d; want 100", got)
	}
}

func TestCopyTableOmitsAbsentFields(t *testing.T) {
	schema := monsterSchema()
	src := flatbuffers.NewBuilder(0)
	nameOff := src.CreateString("Grunt")
	src.StartObject(7)
	src.PrependUOffsetTSlot(0, nameOff, 0)
	off := src.EndObject()
	src.Finish(off)
	srcTable := rootTable(src.FinishedBytes())
	monster, _ := schema.ObjectByName("Monster")
	invField, _ := monster.FieldByName("inventory")

	dst := flatbuffers.NewBuilder(0)
	copyOff := reflection.CopyTable(dst, schema, monster, srcTable)
	dst.Finish(copyOff)
	dstTable := rootTable(dst.FinishedBytes())

	if off := dstTable.Offset(invField.Offset); off != 0 {
		t.Fatalf("inventory present in copy; want absent, matching source")
	}
}

func TestCopyTableDeepCopiesUnionAndStruct(t *testing.T) {
	schema := monsterSchema()
	src := flatbuffers.NewBuilder(0)
	off := buildMonster(src, "Orc", 80, nil, 11, 22, []string{"Sword"}, []int16{50})
	src.Finish(off)
	srcTable := rootTable(src.FinishedBytes())
	monster, _ := schema.ObjectByName("Monster")
	posField, _ := monster.FieldByName("pos")
	equippedField, _ := monster.FieldByName("equipped")

	dst := flatbuffers.NewBuilder(0)
	copyOff := reflection.CopyTable(dst, schema, monster, srcTable)
	dst.Finish(copyOff)
	dstBuf := dst.FinishedBytes()
	dstTable := rootTable(dstBuf)

	posObj, _ := schema.ObjectByName("Pos")
	posOff := dstTable.Offset(posField.Offset)
	posPos := dstTable.Pos + flatbuffers.UOffsetT(posOff)
	xField, _ := posObj.FieldByName("x")
	yField, _ := posObj.FieldByName("y")
	gotX := flatbuffers.GetInt32(dstBuf[posPos+flatbuffers.UOffsetT(xField.Offset):])
	gotY := flatbuffers.GetInt32(dstBuf[posPos+flatbuffers.UOffsetT(yField.Offset):])
	if gotX != 11 || gotY != 22 {
		t.Fatalf("copied pos = {%d, %d}; want {11, 22}", gotX, gotY)
	}

	resolved := reflection.GetUnionObject(schema, monster, equippedField, dstTable)
	weaponObj, _ := schema.ObjectByName("Weapon")
	if resolved != weaponObj {
		t.Fatalf("copied union resolved to %v; want Weapon", resolved.Name)
	}
	sub, ok := reflection.GetFieldT(dstTable, equippedField)
	if !ok {
		t.Fatalf("copied equipped field absent")
	}
	nameField, _ := weaponObj.FieldByName("name")
	if name, ok := reflection.GetFieldS(sub, nameField); !ok || name != "Sword" {
		t.Fatalf("copied equipped weapon name = %q, %v; want Sword, true", name, ok)
	}
}
