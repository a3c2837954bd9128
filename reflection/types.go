package reflection

// BaseType is the closed set of field kinds a schema can describe
// (spec §3 "Data model"). The first 13 values are scalars with a fixed
// byte width; the remaining four are referential kinds that live via a
// relative offset rather than inline bytes.
type BaseType int

const (
	None BaseType = iota
	UType
	Bool
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Long
	ULong
	Float
	Double
	String
	Vector
	Obj
	Union
)

// typeSizes mirrors reflection.h's GetTypeSize table. Referential kinds
// report the width of the forward offset that stands in for them inline
// (4 bytes), not the size of whatever they point to.
var typeSizes = [...]int{
	None:   0,
	UType:  1,
	Bool:   1,
	Byte:   1,
	UByte:  1,
	Short:  2,
	UShort: 2,
	Int:    4,
	UInt:   4,
	Long:   8,
	ULong:  8,
	Float:  4,
	Double: 8,
	String: 4,
	Vector: 4,
	Obj:    4,
	Union:  4,
}

// TypeSize returns the inline byte width of a base type.
func TypeSize(bt BaseType) int {
	return typeSizes[bt]
}

// IsScalar reports whether bt is stored inline as a fixed-width scalar
// (as opposed to a referential kind living via a forward offset).
func IsScalar(bt BaseType) bool {
	return bt <= Double
}

// Type describes a field's declared type: a base type, plus (for
// vectors) the element base type, plus (for Obj/Union/vector-of-Obj) an
// index into the schema's Objects or Enums.
type Type struct {
	BaseType BaseType
	Element  BaseType // valid when BaseType == Vector
	Index    int      // index into Schema.Objects or Schema.Enums; -1 if unused
}
