package bspatch

import "github.com/pkg/errors"

const controlLen = 24

// Control is one record of the control block.
type Control struct {
	// Add is how many bytes to pull from the diff block and combine
	// with old-file bytes.
	Add int64
	// Copy is how many bytes to copy verbatim from the extra block.
	Copy int64
	// Seek moves the old-file cursor forward after the copy. This
	// variant's offset encoding cannot express negative values, so
	// backward seeks are rejected as corrupt rather than applied.
	Seek int64
}

// readControl pulls and decodes the next 24-byte control record. The
// control block's length isn't known in advance; the reconstruction
// loop is driven by the target size, and a patch claiming a bigger
// output than its control data covers surfaces here as a short read.
func readControl(s *substream) (Control, error) {
	var buf [controlLen]byte
	err := s.readExact(buf[:])
	if err != nil {
		return Control{}, err
	}

	c := Control{
		Add:  ReadOffset(buf[0:8]),
		Copy: ReadOffset(buf[8:16]),
		Seek: ReadOffset(buf[16:24]),
	}
	if c.Add < 0 || c.Copy < 0 || c.Seek < 0 {
		return Control{}, errors.Wrap(ErrCorrupt, "control record out of range")
	}

	return c, nil
}
