package bspatch

import "encoding/binary"

var endianness = binary.LittleEndian

const (
	magicText = "BSDIFF40"
	headerLen = 32

	// MaxOffset is the largest length or size a patch field can carry.
	// The format stores 8-byte fields but this variant only honors
	// 32-bit magnitudes, so files above 2GiB are not supported.
	MaxOffset = 0x7FFFFFFF
)

// ReadOffset decodes one 8-byte little-endian offset field. It returns
// -1 when the field is invalid: any encoding that sets a byte beyond
// index 3, or a 32-bit magnitude above MaxOffset. Sign-bit conventions
// from other bsdiff encoders are not honored here, negative values
// simply don't decode.
func ReadOffset(buf []byte) int64 {
	if endianness.Uint32(buf[4:8]) != 0 {
		return -1
	}

	value := int64(endianness.Uint32(buf[0:4]))
	if value > MaxOffset {
		return -1
	}

	return value
}

// WriteOffset encodes value into an 8-byte field, the inverse of
// ReadOffset. Values outside [0, MaxOffset] are a programmer error.
func WriteOffset(buf []byte, value int64) {
	if value < 0 || value > MaxOffset {
		panic("bspatch: offset out of range")
	}

	endianness.PutUint32(buf[0:4], uint32(value))
	endianness.PutUint32(buf[4:8], 0)
}
