package reflection_test

import (
	"bytes"
	"testing"

	"github.com/dwillmer/flatbuffers/flatbuffers"
	"github.com/dwillmer/flatbuffers/reflection"
)

func TestSetStringGrowAndShrink(t *testing.T) {
	schema := monsterSchema()
	b := flatbuffers.NewBuilder(0)
	off := buildMonster(b, "Orc", 80, []byte{1, 2, 3, 4}, 7, 3, []string{"Sword"}, []int16{50})
	b.Finish(off)
	buf := b.FinishedBytes()
	monster, _ := schema.ObjectByName("Monster")
	nameField, _ := monster.FieldByName("name")
	invField, _ := monster.FieldByName("inventory")

	table := rootTable(buf)
	if !reflection.SetString(schema, table, nameField, "Orc Overlord Supreme", &buf) {
		t.Fatalf("SetString grow returned false")
	}
	table = rootTable(buf)
	if s, ok := reflection.GetFieldS(table, nameField); !ok || s != "Orc Overlord Supreme" {
		t.Fatalf("name after grow = %q, %v; want Orc Overlord Supreme, true", s, ok)
	}
	// The inventory vector, which sits before the name string in the
	// buffer, must still read back intact: straddling offsets had to be
	// adjusted by the resize.
	n, ok := reflection.GetFieldVectorLen(table, invField)
	if !ok || n != 4 {
		t.Fatalf("inventory len after grow = %d, %v; want 4, true", n, ok)
	}
	pos := reflection.GetFieldVectorElemPos(table, invField, 1, 2)
	if got := table.Bytes[pos]; got != 3 {
		t.Fatalf("inventory[2] after grow = %d; want 3", got)
	}

	if !reflection.SetString(schema, table, nameField, "Orc", &buf) {
		t.Fatalf("SetString shrink returned false")
	}
	table = rootTable(buf)
	if s, ok := reflection.GetFieldS(table, nameField); !ok || s != "Orc" {
		t.Fatalf("name after shrink = %q, %v; want Orc, true", s, ok)
	}
	n, ok = reflection.GetFieldVectorLen(table, invField)
	if !ok || n != 4 {
		t.Fatalf("inventory len after shrink = %d, %v; want 4, true", n, ok)
	}
}

func TestResizeVectorGrowFillsNewElements(t *testing.T) {
	schema := monsterSchema()
	b := flatbuffers.NewBuilder(0)
	off := buildMonster(b, "Orc", 80, []byte{1, 2, 3, 4}, 7, 3, nil, nil)
	b.Finish(off)
	buf := b.FinishedBytes()
	monster, _ := schema.ObjectByName("Monster")
	invField, _ := monster.FieldByName("inventory")
	nameField, _ := monster.FieldByName("name")

	table := rootTable(buf)
	if !reflection.ResizeVector(schema, table, invField, 6, []byte{0xFF}, &buf) {
		t.Fatalf("ResizeVector grow returned false")
	}
	table = rootTable(buf)
	n, ok := reflection.GetFieldVectorLen(table, invField)
	if !ok || n != 6 {
		t.Fatalf("inventory len after grow = %d, %v; want 6, true", n, ok)
	}
	for i, want := range []byte{1, 2, 3, 4, 0xFF, 0xFF} {
		pos := reflection.GetFieldVectorElemPos(table, invField, 1, i)
		if got := table.Bytes[pos]; got != want {
			t.Fatalf("inventory[%d] = %d; want %d", i, got, want)
		}
	}
	if s, ok := reflection.GetFieldS(table, nameField); !ok || s != "Orc" {
		t.Fatalf("name after vector grow = %q, %v; want Orc, true", s, ok)
	}
}

func TestResizeVectorShrink(t *testing.T) {
	schema := monsterSchema()
	b := flatbuffers.NewBuilder(0)
	off := buildMonster(b, "Orc", 80, []byte{1, 2, 3, 4}, 7, 3, nil, nil)
	b.Finish(off)
	buf := b.FinishedBytes()
	monster, _ := schema.ObjectByName("Monster")
	invField, _ := monster.FieldByName("inventory")

	table := rootTable(buf)
	if !reflection.ResizeVector(schema, table, invField, 2, []byte{0}, &buf) {
		t.Fatalf("ResizeVector shrink returned false")
	}
	table = rootTable(buf)
	n, ok := reflection.GetFieldVectorLen(table, invField)
	if !ok || n != 2 {
		t.Fatalf("inventory len after shrink = %d, %v; want 2, true", n, ok)
	}
	for i, want := range []byte{1, 2} {
		pos := reflection.GetFieldVectorElemPos(table, invField, 1, i)
		if got := table.Bytes[pos]; got != want {
			t.Fatalf("inventory[%d] = %d; want %d", i, got, want)
		}
	}
}

func TestResizeVectorOfTablesPreservesSiblingOffsets(t *testing.T) {
	schema := monsterSchema()
	b := flatbuffers.NewBuilder(0)
	off := buildMonster(b, "Orc", 80, []byte{9, 9}, 7, 3, []string{"Sword", "Axe"}, []int16{50, 30})
	b.Finish(off)
	buf := b.FinishedBytes()
	monster, _ := schema.ObjectByName("Monster")
	weaponsField, _ := monster.FieldByName("weapons")
	nameField, _ := monster.FieldByName("name")

	table := rootTable(buf)
	before, _ := reflection.GetFieldVectorLen(table, weaponsField)

	// Growing an unrelated string must leave the table-vector's elements
	// (and their nested offsets) pointing at valid, unchanged weapon data.
	if !reflection.SetString(schema, table, nameField, "A much longer orc name", &buf) {
		t.Fatalf("SetString returned false")
	}
	table = rootTable(buf)
	after, ok := reflection.GetFieldVectorLen(table, weaponsField)
	if !ok || after != before {
		t.Fatalf("weapons len changed: before=%d after=%d ok=%v", before, after, ok)
	}

	weaponObj, _ := schema.ObjectByName("Weapon")
	weaponNameField, _ := weaponObj.FieldByName("name")
	for i, want := range []string{"Sword", "Axe"} {
		pos := reflection.GetFieldVectorElemPos(table, weaponsField, 4, i)
		target := pos + flatbuffers.UOffsetT(flatbuffers.GetUOffsetT(table.Bytes[pos:]))
		sub := &flatbuffers.Table{Bytes: table.Bytes, Pos: target}
		if got, ok := reflection.GetFieldS(sub, weaponNameField); !ok || got != want {
			t.Fatalf("weapons[%d].name = %q, %v; want %s, true", i, got, ok, want)
		}
	}
}

func TestResizeSharedSubTableBothReferencesStayValid(t *testing.T) {
	// The spec frames this as the hard case: table A referring to table B
	// twice (here, Monster.equipped and Monster.weapons[0] are built from
	// the very same Weapon offset). A resize anchored inside the shared B
	// must leave both of A's references resolving to the same, now-
	// updated, B — not diverge, and not double-adjust either offset.
	schema := monsterSchema()
	b := flatbuffers.NewBuilder(0)
	off := buildMonster(b, "Orc", 80, nil, 0, 0, []string{"Sword"}, []int16{50})
	b.Finish(off)
	buf := b.FinishedBytes()
	monster, _ := schema.ObjectByName("Monster")
	weaponObj, _ := schema.ObjectByName("Weapon")
	weaponsField, _ := monster.FieldByName("weapons")
	equippedField, _ := monster.FieldByName("equipped")
	weaponNameField, _ := weaponObj.FieldByName("name")

	table := rootTable(buf)
	equippedSub, ok := reflection.GetFieldT(table, equippedField)
	if !ok {
		t.Fatalf("equipped field absent")
	}
	vecPos := reflection.GetFieldVectorElemPos(table, weaponsField, 4, 0)
	vecTarget := vecPos + flatbuffers.GetUOffsetT(table.Bytes[vecPos:])
	if equippedSub.Pos != vecTarget {
		t.Fatalf("test setup failed: equipped and weapons[0] don't share a table (equipped.Pos=%d, weapons[0]=%d)", equippedSub.Pos, vecTarget)
	}

	if !reflection.SetString(schema, equippedSub, weaponNameField, "Greatsword", &buf) {
		t.Fatalf("SetString on shared sub-table returned false")
	}

	table = rootTable(buf)
	equippedSub, ok = reflection.GetFieldT(table, equippedField)
	if !ok {
		t.Fatalf("equipped field absent after resize")
	}
	if name, ok := reflection.GetFieldS(equippedSub, weaponNameField); !ok || name != "Greatsword" {
		t.Fatalf("equipped weapon name after resize = %q, %v; want Greatsword, true", name, ok)
	}

	vecPos = reflection.GetFieldVectorElemPos(table, weaponsField, 4, 0)
	vecTarget = vecPos + flatbuffers.GetUOffsetT(table.Bytes[vecPos:])
	vecSub := &flatbuffers.Table{Bytes: table.Bytes, Pos: vecTarget}
	if name, ok := reflection.GetFieldS(vecSub, weaponNameField); !ok || name != "Greatsword" {
		t.Fatalf("weapons[0] name after resize = %q, %v; want Greatsword, true", name, ok)
	}
	if equippedSub.Pos != vecTarget {
		t.Fatalf("equipped and weapons[0] diverged after resize: equipped.Pos=%d, weapons[0]=%d", equippedSub.Pos, vecTarget)
	}
}

func TestResizeIsNoOpWhenDeltaRoundsToZero(t *testing.T) {
	schema := monsterSchema()
	b := flatbuffers.NewBuilder(0)
	off := buildMonster(b, "Orc", 80, []byte{1, 2}, 7, 3, nil, nil)
	b.Finish(off)
	buf := b.FinishedBytes()
	original := append([]byte(nil), buf...)

	reflection.Resize(schema, 0, 0, &buf)
	if !bytes.Equal(buf, original) {
		t.Fatalf("Resize with delta=0 mutated the buffer")
	}
}
