package bspatch

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// header is the 32-byte patch preamble: the magic tag followed by the
// compressed lengths of the control and diff blocks and the exact size
// of the reconstructed file.
type header struct {
	ctrlLen int64
	diffLen int64
	newSize int64
}

func readHeader(r io.Reader) (header, error) {
	var buf [headerLen]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return header{}, errors.Wrap(ErrCorrupt, "short header")
	}

	if !bytes.Equal(buf[:8], []byte(magicText)) {
		return header{}, errors.Wrap(ErrCorrupt, "bad magic")
	}

	h := header{
		ctrlLen: ReadOffset(buf[8:16]),
		diffLen: ReadOffset(buf[16:24]),
		newSize: ReadOffset(buf[24:32]),
	}
	if h.ctrlLen < 0 || h.diffLen < 0 || h.newSize < 0 {
		return header{}, errors.Wrap(ErrCorrupt, "header offset out of range")
	}

	return h, nil
}
