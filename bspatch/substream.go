package bspatch

import (
	"io"

	"github.com/Joyounger/bsdiff/counter"
	"github.com/dsnet/compress/bzip2"
	"github.com/pkg/errors"
)

// substream is one of the three independently-compressed regions of a
// patch file. Each owns its own decompressor over a section of the
// patch, so it stops at its own logical stream end no matter what the
// neighboring blocks contain.
type substream struct {
	name string
	bz   *bzip2.Reader
	raw  *counter.Reader
}

func openSubstream(patch io.ReaderAt, name string, offset int64, length int64) (*substream, error) {
	raw := counter.NewReader(io.NewSectionReader(patch, offset, length))
	bz, err := bzip2.NewReader(raw, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "opening %s block: %v", name, err)
	}

	return &substream{
		name: name,
		bz:   bz,
		raw:  raw,
	}, nil
}

// readExact fills buf entirely or fails. A short read means the patch
// claims more data than its compressed blocks hold, which is never
// retried: compressed-stream corruption is terminal.
func (s *substream) readExact(buf []byte) error {
	_, err := io.ReadFull(s.bz, buf)
	if err != nil {
		return errors.Wrapf(ErrCorrupt, "short read in %s block: %v", s.name, err)
	}
	return nil
}

func (s *substream) close() error {
	return s.bz.Close()
}

// substreamSet holds the three decompressing readers over one patch
// file: control at offset 32, diff right after it, extra last.
type substreamSet struct {
	control *substream
	diff    *substream
	extra   *substream
}

func openSubstreams(patch io.ReaderAt, patchSize int64, h header) (*substreamSet, error) {
	// ctrlLen and diffLen are both capped at MaxOffset, so these sums
	// can't overflow int64.
	if headerLen+h.ctrlLen+h.diffLen > patchSize {
		return nil, errors.Wrap(ErrCorrupt, "undersized compressed blocks")
	}

	set := &substreamSet{}

	var err error
	set.control, err = openSubstream(patch, "control", headerLen, h.ctrlLen)
	if err != nil {
		return nil, err
	}

	set.diff, err = openSubstream(patch, "diff", headerLen+h.ctrlLen, h.diffLen)
	if err != nil {
		set.close()
		return nil, err
	}

	set.extra, err = openSubstream(patch, "extra", headerLen+h.ctrlLen+h.diffLen, patchSize-headerLen-h.ctrlLen-h.diffLen)
	if err != nil {
		set.close()
		return nil, err
	}

	return set, nil
}

// compressedCount returns how many compressed bytes have been pulled
// from the patch across all three substreams.
func (set *substreamSet) compressedCount() int64 {
	var total int64
	for _, s := range []*substream{set.control, set.diff, set.extra} {
		if s != nil {
			total += s.raw.Count()
		}
	}
	return total
}

// close releases whatever substreams are open. It tolerates a
// partially-opened set so the open path can clean up after itself.
func (set *substreamSet) close() {
	for _, s := range []*substream{set.control, set.diff, set.extra} {
		if s != nil {
			s.close()
		}
	}
}
