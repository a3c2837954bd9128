package flatbuffers

import (
	"encoding/binary"
	"math"
)

// Sizes in bytes of the scalar and offset types used throughout the wire
// format. The scalar widths match the fixed byte sizes of the schema's
// scalar base types (spec §3, "scalars with fixed byte sizes").
const (
	SizeUint8  = 1
	SizeUint16 = 2
	SizeUint32 = 4
	SizeUint64 = 8

	SizeInt8  = 1
	SizeInt16 = 2
	SizeInt32 = 4
	SizeInt64 = 8

	SizeFloat32 = 4
	SizeFloat64 = 8

	SizeBool = 1
	SizeByte = 1

	SizeSOffsetT = 4
	SizeUOffsetT = 4
	SizeVOffsetT = 2

	// VtableMetadataFields is the number of VOffsetT-wide housekeeping
	// fields at the front of every vtable: its own byte size, then the
	// byte size of the object it describes.
	VtableMetadataFields = 2
)

// UOffsetT is an unsigned forward offset: stored at location L, it means
// "the target is at L + this_value" (spec: "Forward offset" in GLOSSARY).
type UOffsetT uint32

// SOffsetT is a signed offset, used only for the table-to-vtable link,
// which may point either direction relative to where it is stored.
type SOffsetT int32

// VOffsetT is a vtable entry: either a field's byte offset within its
// table, or 0 to mean "absent".
type VOffsetT uint16

// GetBool reads a bool from the front of b.
func GetBool(b []byte) bool { return b[0] != 0 }

// WriteBool writes a bool to the front of b.
func WriteBool(b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

// GetByte reads a byte from the front of b.
func GetByte(b []byte) byte { return b[0] }

// WriteByte writes a byte to the front of b.
func WriteByte(b []byte, v byte) { b[0] = v }

// GetUint8 reads a uint8 from the front of b.
func GetUint8(b []byte) uint8 { return b[0] }

// WriteUint8 writes a uint8 to the front of b.
func WriteUint8(b []byte, v uint8) { b[0] = v }

// GetInt8 reads an int8 from the front of b.
func GetInt8(b []byte) int8 { return int8(b[0]) }

// WriteInt8 writes an int8 to the front of b.
func WriteInt8(b []byte, v int8) { b[0] = byte(v) }

// GetUint16 reads a little-endian uint16 from the front of b.
func GetUint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// WriteUint16 writes a little-endian uint16 to the front of b.
func WriteUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }

// GetInt16 reads a little-endian int16 from the front of b.
func GetInt16(b []byte) int16 { return int16(GetUint16(b)) }

// WriteInt16 writes a little-endian int16 to the front of b.
func WriteInt16(b []byte, v int16) { WriteUint16(b, uint16(v)) }

// GetUint32 reads a little-endian uint32 from the front of b.
func GetUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// WriteUint32 writes a little-endian uint32 to the front of b.
func WriteUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// GetInt32 reads a little-endian int32 from the front of b.
func GetInt32(b []byte) int32 { return int32(GetUint32(b)) }

// WriteInt32 writes a little-endian int32 to the front of b.
func WriteInt32(b []byte, v int32) { WriteUint32(b, uint32(v)) }

// GetUint64 reads a little-endian uint64 from the front of b.
func GetUint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// WriteUint64 writes a little-endian uint64 to the front of b.
func WriteUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// GetInt64 reads a little-endian int64 from the front of b.
func GetInt64(b []byte) int64 { return int64(GetUint64(b)) }

// WriteInt64 writes a little-endian int64 to the front of b.
func WriteInt64(b []byte, v int64) { WriteUint64(b, uint64(v)) }

// GetFloat32 reads a little-endian float32 from the front of b.
func GetFloat32(b []byte) float32 {
	return math.Float32frombits(GetUint32(b))
}

// WriteFloat32 writes a little-endian float32 to the front of b.
func WriteFloat32(b []byte, v float32) {
	WriteUint32(b, math.Float32bits(v))
}

// GetFloat64 reads a little-endian float64 from the front of b.
func GetFloat64(b []byte) float64 {
	return math.Float64frombits(GetUint64(b))
}

// WriteFloat64 writes a little-endian float64 to the front of b.
func WriteFloat64(b []byte, v float64) {
	WriteUint64(b, math.Float64bits(v))
}

// GetUOffsetT reads a UOffsetT from the front of b.
func GetUOffsetT(b []byte) UOffsetT { return UOffsetT(GetUint32(b)) }

// WriteUOffsetT writes a UOffsetT to the front of b.
func WriteUOffsetT(b []byte, v UOffsetT) { WriteUint32(b, uint32(v)) }

// GetSOffsetT reads a SOffsetT from the front of b.
func GetSOffsetT(b []byte) SOffsetT { return SOffsetT(GetInt32(b)) }

// WriteSOffsetT writes a SOffsetT to the front of b.
func WriteSOffsetT(b []byte, v SOffsetT) { WriteInt32(b, int32(v)) }

// GetVOffsetT reads a VOffsetT from the front of b.
func GetVOffsetT(b []byte) VOffsetT { return VOffsetT(GetUint16(b)) }

// WriteVOffsetT writes a VOffsetT to the front of b.
func WriteVOffsetT(b []byte, v VOffsetT) { WriteUint16(b, uint16(v)) }

// byteSliceToString copies a byte slice out as a string.
func byteSliceToString(b []byte) string {
	return string(b)
}
