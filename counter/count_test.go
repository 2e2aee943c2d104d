package counter_test

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/Joyounger/bsdiff/counter"
	"github.com/stretchr/testify/assert"
)

func Test_WriterCount(t *testing.T) {
	cw := counter.NewWriter(ioutil.Discard)
	buf := []byte{1, 2, 3, 4, 5, 6}
	for i := 0; i < 6; i++ {
		cw.Write(buf)
	}

	assert.Equal(t, cw.Count(), int64(36))
}

func Test_NilWriter(t *testing.T) {
	cw := counter.NewWriter(nil)
	buf := []byte{1, 2, 3, 4, 5, 6}
	for i := 0; i < 6; i++ {
		cw.Write(buf)
	}

	assert.Equal(t, cw.Count(), int64(36))
}

func Test_WriterCallback(t *testing.T) {
	count := int64(-1)
	onWrite := func(c int64) { count = c }

	cw := counter.NewWriterCallback(onWrite, nil)
	buf := []byte{1, 2, 3, 4, 5, 6}

	cw.Write(buf)
	assert.Equal(t, count, int64(6))

	cw.Write(buf)
	assert.Equal(t, count, int64(12))
}

func Test_ReaderCount(t *testing.T) {
	cr := counter.NewReader(bytes.NewReader(make([]byte, 128)))
	result, err := ioutil.ReadAll(cr)
	assert.NoError(t, err)
	assert.Len(t, result, 128)
	assert.Equal(t, cr.Count(), int64(128))
}

func Test_ReaderCallback(t *testing.T) {
	count := int64(-1)
	onRead := func(c int64) { count = c }

	cr := counter.NewReaderCallback(onRead, bytes.NewReader(make([]byte, 64)))
	_, err := ioutil.ReadAll(cr)
	assert.NoError(t, err)
	assert.Equal(t, count, int64(64))
}
