package bspatch

import (
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/pkg/errors"
)

// WritePatch serializes a BSDIFF40 patch from pre-computed control,
// diff and extra streams. The sum of Add fields must match len(diff),
// the sum of Copy fields must match len(extra), and every field must
// fit in an offset field. Computing the streams themselves (the diff
// algorithm proper) is someone else's job.
func WritePatch(w io.Writer, controls []Control, diff []byte, extra []byte) error {
	var addTotal, copyTotal int64
	for _, c := range controls {
		if c.Add < 0 || c.Copy < 0 || c.Seek < 0 {
			return errors.Errorf("control record with negative field: %+v", c)
		}
		// Add and Copy are bounded by the newSize check below; Seek
		// has no such aggregate and needs its own cap.
		if c.Seek > MaxOffset {
			return errors.Errorf("control record seek out of range: %+v", c)
		}
		addTotal += c.Add
		copyTotal += c.Copy
	}
	if addTotal != int64(len(diff)) {
		return errors.Errorf("control records add up to %d diff bytes, got %d", addTotal, len(diff))
	}
	if copyTotal != int64(len(extra)) {
		return errors.Errorf("control records add up to %d extra bytes, got %d", copyTotal, len(extra))
	}
	newSize := addTotal + copyTotal
	if newSize > MaxOffset {
		return errors.Errorf("new file size %d out of range", newSize)
	}

	ctrlBlock, err := compressBlock(func(bz io.Writer) error {
		var rec [controlLen]byte
		for _, c := range controls {
			WriteOffset(rec[0:8], c.Add)
			WriteOffset(rec[8:16], c.Copy)
			WriteOffset(rec[16:24], c.Seek)
			_, err := bz.Write(rec[:])
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	diffBlock, err := compressBlock(func(bz io.Writer) error {
		_, err := bz.Write(diff)
		return err
	})
	if err != nil {
		return err
	}

	extraBlock, err := compressBlock(func(bz io.Writer) error {
		_, err := bz.Write(extra)
		return err
	})
	if err != nil {
		return err
	}

	var hdr [headerLen]byte
	copy(hdr[:8], magicText)
	WriteOffset(hdr[8:16], int64(len(ctrlBlock)))
	WriteOffset(hdr[16:24], int64(len(diffBlock)))
	WriteOffset(hdr[24:32], newSize)

	for _, chunk := range [][]byte{hdr[:], ctrlBlock, diffBlock, extraBlock} {
		_, err = w.Write(chunk)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

func compressBlock(fill func(bz io.Writer) error) ([]byte, error) {
	buf := new(bytes.Buffer)
	bz, err := bzip2.NewWriter(buf, &bzip2.WriterConfig{
		Level: bzip2.BestCompression,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = fill(bz)
	if err != nil {
		bz.Close()
		return nil, errors.WithStack(err)
	}

	err = bz.Close()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return buf.Bytes(), nil
}
