// Package bspatch applies BSDIFF40 patches: given an old file and a
// compact binary patch, it reconstructs the new file byte for byte.
//
// A patch is a 32-byte header followed by three bzip2-compressed
// blocks. The control block is a sequence of (add, copy, seek)
// records; the diff block holds bytes that are added, modulo 256, to
// old-file bytes; the extra block holds wholly new content. The whole
// output is built in a single buffer, so files above MaxOffset bytes
// are out of reach.
package bspatch

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/itchio/headway/state"
	"github.com/pkg/errors"
)

// PatchContext carries the optional knobs of a patch application. The
// zero value is ready to use.
type PatchContext struct {
	// Consumer receives debug messages about the patch being applied.
	// May be nil.
	Consumer *state.Consumer
}

// Patch reads a whole BSDIFF40 patch from patch (patchSize bytes long),
// applies it to old, and writes the reconstructed file to new. The
// output is flushed only once the full buffer has been validated, so a
// failure never produces partial output on new.
func (ctx *PatchContext) Patch(old io.Reader, new io.Writer, patch io.ReaderAt, patchSize int64) error {
	consumer := ctx.Consumer
	if consumer == nil {
		consumer = &state.Consumer{}
	}

	h, err := readHeader(io.NewSectionReader(patch, 0, patchSize))
	if err != nil {
		return err
	}
	consumer.Debugf("control %d bytes, diff %d bytes, new file %d bytes", h.ctrlLen, h.diffLen, h.newSize)

	set, err := openSubstreams(patch, patchSize, h)
	if err != nil {
		return err
	}
	defer set.close()

	obuf, err := ioutil.ReadAll(old)
	if err != nil {
		return errors.WithStack(err)
	}
	oldSize := int64(len(obuf))

	nbuf := make([]byte, h.newSize)

	var oldpos, newpos int64

	for newpos < h.newSize {
		ctrl, err := readControl(set.control)
		if err != nil {
			return err
		}

		// Sanity-check
		if newpos+ctrl.Add > h.newSize {
			return errors.Wrap(ErrCorrupt, "diff bytes past end of new file")
		}

		// Read diff string
		err = set.diff.readExact(nbuf[newpos : newpos+ctrl.Add])
		if err != nil {
			return err
		}

		// Add old data to diff string. Old bytes past the end of the
		// old file count as zero.
		cb := ctrl.Add
		if oldpos+cb > oldSize {
			cb = oldSize - oldpos
		}
		for i := int64(0); i < cb; i++ {
			nbuf[newpos+i] += obuf[oldpos+i]
		}

		// Adjust pointers. Every position at or past the end of the
		// old file reads as zero, so the cursor saturates there
		// instead of tracking how far past it went; unbounded growth
		// would let a hostile control stream overflow it.
		newpos += ctrl.Add
		oldpos += ctrl.Add
		if oldpos > oldSize {
			oldpos = oldSize
		}

		// Sanity-check
		if newpos+ctrl.Copy > h.newSize {
			return errors.Wrap(ErrCorrupt, "extra bytes past end of new file")
		}

		// Read extra string
		err = set.extra.readExact(nbuf[newpos : newpos+ctrl.Copy])
		if err != nil {
			return err
		}

		// Adjust pointers. oldpos can never go negative: the offset
		// codec rejects negative fields, so readControl has already
		// refused any record that would seek backward. Seeks past the
		// end saturate like the diff-phase advance does.
		newpos += ctrl.Copy
		oldpos += ctrl.Seek
		if oldpos > oldSize {
			oldpos = oldSize
		}
	}

	consumer.Debugf("reconstructed %d bytes from %d compressed", newpos, set.compressedCount())

	// Write the new file
	for len(nbuf) > 0 {
		n, err := new.Write(nbuf)
		if err != nil {
			return errors.WithStack(err)
		}
		nbuf = nbuf[n:]
	}

	return nil
}

// Patch applies patch to old with default settings, and writes the
// result to new.
func Patch(old io.Reader, new io.Writer, patch io.ReaderAt, patchSize int64) error {
	ctx := &PatchContext{}
	return ctx.Patch(old, new, patch, patchSize)
}

// Bytes applies patch to old, entirely in memory.
func Bytes(old []byte, patch []byte) ([]byte, error) {
	out := new(bytes.Buffer)
	err := Patch(bytes.NewReader(old), out, bytes.NewReader(patch), int64(len(patch)))
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
