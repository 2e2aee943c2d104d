package bspatch_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Joyounger/bsdiff/bspatch"
)

func Test_OffsetRoundTrip(t *testing.T) {
	var buf [8]byte
	for _, value := range []int64{0, 1, 255, 256, 0x12345678, bspatch.MaxOffset} {
		bspatch.WriteOffset(buf[:], value)
		assert.EqualValues(t, value, bspatch.ReadOffset(buf[:]))
	}
}

func Test_OffsetHighBytesRejected(t *testing.T) {
	var buf [8]byte
	for i := 4; i < 8; i++ {
		bspatch.WriteOffset(buf[:], 42)
		buf[i] = 1
		assert.EqualValues(t, -1, bspatch.ReadOffset(buf[:]))
	}
}

func Test_OffsetMagnitudeCap(t *testing.T) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 0x80000000)
	assert.EqualValues(t, -1, bspatch.ReadOffset(buf[:]))

	binary.LittleEndian.PutUint64(buf[:], 0xFFFFFFFF)
	assert.EqualValues(t, -1, bspatch.ReadOffset(buf[:]))

	// two's-complement -1: every byte set, including the high ones
	binary.LittleEndian.PutUint64(buf[:], ^uint64(0))
	assert.EqualValues(t, -1, bspatch.ReadOffset(buf[:]))
}

func Test_WriteOffsetRange(t *testing.T) {
	var buf [8]byte
	assert.Panics(t, func() { bspatch.WriteOffset(buf[:], -1) })
	assert.Panics(t, func() { bspatch.WriteOffset(buf[:], bspatch.MaxOffset+1) })
}
