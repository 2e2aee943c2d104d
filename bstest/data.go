package bstest

import (
	"bytes"
	"io"
	"math/rand"

	"github.com/itchio/randsource"
)

// RandomData returns size bytes of deterministic pseudo-random data.
// Same seed, same bytes, so scenarios stay reproducible.
func RandomData(seed int64, size int64) []byte {
	prng := randsource.Reader{
		Source: rand.New(rand.NewSource(seed)),
	}

	buf := new(bytes.Buffer)
	buf.Grow(int(size))
	_, err := io.CopyN(buf, prng, size)
	if err != nil {
		panic(err)
	}

	return buf.Bytes()
}

// Mutate returns a copy of data with every interval-th byte bumped by
// delta, giving patch scenarios an old/new pair that differs a little
// everywhere, like a recompiled binary would.
func Mutate(data []byte, interval int, delta byte) []byte {
	out := append([]byte(nil), data...)
	for i := 0; i < len(out); i += interval {
		out[i] += delta
	}
	return out
}
