package bstest

import (
	"bytes"
	"testing"

	"github.com/Joyounger/bsdiff/bspatch"
)

// BuildPatch serializes a patch from explicit control records and
// streams, failing the test on any mismatch.
func BuildPatch(t *testing.T, controls []bspatch.Control, diff []byte, extra []byte) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	Must(t, bspatch.WritePatch(buf, controls, diff, extra))
	return buf.Bytes()
}

// NaiveDiff builds a valid single-record patch turning old into new:
// an add run over the part of new that overlaps old, with each diff
// byte the mod-256 difference against the old byte at the same
// position, then the tail of new as an extra run. It is the simplest
// correct generator, useful for diff-then-patch round trips without
// the real diff algorithm.
func NaiveDiff(t *testing.T, old []byte, new []byte) []byte {
	t.Helper()

	overlap := len(new)
	if overlap > len(old) {
		overlap = len(old)
	}

	diff := make([]byte, overlap)
	for i := 0; i < overlap; i++ {
		diff[i] = new[i] - old[i]
	}
	extra := new[overlap:]

	controls := []bspatch.Control{
		{Add: int64(overlap), Copy: int64(len(extra)), Seek: 0},
	}
	return BuildPatch(t, controls, diff, extra)
}
