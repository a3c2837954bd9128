package reflection_test

import (
	"github.com/dwillmer/flatbuffers/flatbuffers"
	"github.com/dwillmer/flatbuffers/reflection"
)

// The fixture below stands in for a compiled schema: a small "Monster"
// table carrying a string, a defaulted short, a ubyte vector, an inline
// struct, a vector of sub-tables, and a union — enough to exercise
// each referential kind (String, Vector, Obj, Union) the
// accessor/resize/copy code dispatches on. Decoding
// an actual .bfbs schema file is out of scope (spec §1), so tests build
// both the Schema and the wire bytes by hand, the same way the schema
// compiler would have emitted them.

func monsterSchema() *reflection.Schema {
	posObj := reflection.NewObject("Pos", true, 4, 8, []*reflection.Field{
		{Name: "x", Type: reflection.Type{BaseType: reflection.Int}, Offset: 0},
		{Name: "y", Type: reflection.Type{BaseType: reflection.Int}, Offset: 4},
	})
	weaponObj := reflection.NewObject("Weapon", false, 2, 0, []*reflection.Field{
		{Name: "name", Type: reflection.Type{BaseType: reflection.String}, Offset: 4},
		{Name: "damage", Type: reflection.Type{BaseType: reflection.Short}, Offset: 6},
	})
	armorObj := reflection.NewObject("Armor", false, 2, 0, []*reflection.Field{
		{Name: "name", Type: reflection.Type{BaseType: reflection.String}, Offset: 4},
		{Name: "defense", Type: reflection.Type{BaseType: reflection.Short}, Offset: 6},
	})

	equipment := reflection.NewEnum("Equipment", true, []*reflection.EnumVal{
		{Name: "NONE", Value: 0, Object: nil},
		{Name: "Weapon", Value: 1, Object: weaponObj},
		{Name: "Armor", Value: 2, Object: armorObj},
	})

	monsterObj := reflection.NewObject("Monster", false, 4, 0, []*reflection.Field{
		{Name: "name", Type: reflection.Type{BaseType: reflection.String}, Offset: 4},
		{Name: "hp", Type: reflection.Type{BaseType: reflection.Short}, Offset: 6, DefaultInteger: 100},
		{Name: "inventory", Type: reflection.Type{BaseType: reflection.Vector, Element: reflection.UByte}, Offset: 8},
		{Name: "pos", Type: reflection.Type{BaseType: reflection.Obj, Index: 0}, Offset: 10},
		{Name: "weapons", Type: reflection.Type{BaseType: reflection.Vector, Element: reflection.Obj, Index: 1}, Offset: 12},
		{Name: "equipped_type", Type: reflection.Type{BaseType: reflection.UType}, Offset: 14},
		{Name: "equipped", Type: reflection.Type{BaseType: reflection.Union, Index: 0}, Offset: 16},
	})

	objects := []*reflection.Object{posObj, weaponObj, armorObj, monsterObj}
	enums := []*reflection.Enum{equipment}
	return reflection.NewSchema(objects, enums, 3)
}

// buildMonster writes a Monster table equivalent to the Go flatbuffers
// builder API's generated code for the same fields, written by hand
// since there is no generated MonsterBuilder here, and returns its
// offset; the caller finishes the buffer.
func buildMonster(b *flatbuffers.Builder, name string, hp int16, inventory []byte, x, y int32, weaponNames []string, weaponDamage []int16) flatbuffers.UOffsetT {
	weaponOffs := make([]flatbuffers.UOffsetT, len(weaponNames))
	for i, wn := range weaponNames {
		n := b.CreateString(wn)
		b.StartObject(2)
		b.PrependInt16Slot(1, weaponDamage[i], 0)
		b.PrependUOffsetTSlot(0, n, 0)
		weaponOffs[i] = b.EndObject()
	}
	var equippedOff flatbuffers.UOffsetT
	if len(weaponOffs) > 0 {
		equippedOff = weaponOffs[0]
	}

	var weaponsVec flatbuffers.UOffsetT
	if len(weaponOffs) > 0 {
		weaponsVec = b.CreateOffsetVector(weaponOffs)
	}

	nameOff := b.CreateString(name)
	var invOff flatbuffers.UOffsetT
	if inventory != nil {
		invOff = b.CreateByteVector(inventory)
	}

	structBuf := make([]byte, 8)
	flatbuffers.WriteInt32(structBuf[0:], x)
	flatbuffers.WriteInt32(structBuf[4:], y)

	b.StartObject(7)
	if equippedOff != 0 {
		b.PrependUOffsetTSlot(6, equippedOff, 0)
		b.PrependByteSlot(5, 1, 0) // 1 == Weapon enum key
	}
	if weaponsVec != 0 {
		b.PrependUOffsetTSlot(4, weaponsVec, 0)
	}
	posOff := b.PrependStructBytes(structBuf, 4)
	b.PrependStructSlot(3, posOff, 0)
	if invOff != 0 {
		b.PrependUOffsetTSlot(2, invOff, 0)
	}
	b.PrependInt16Slot(1, hp, 100)
	b.PrependUOffsetTSlot(0, nameOff, 0)
	return b.EndObject()
}

func rootTable(buf []byte) *flatbuffers.Table {
	return reflection.GetAnyRoot(buf)
}
