package bspatch

import "github.com/pkg/errors"

// ErrCorrupt indicates that a patch is malformed: bad magic, invalid
// header fields, a corrupt or undersized compressed block, or a control
// record that would read or write out of bounds.
var ErrCorrupt = errors.New("corrupt patch")

// ErrorKind classifies a failure for callers that only care about
// exit-status decisions.
type ErrorKind int

const (
	// KindIO covers failures to open, read or write one of the three
	// named files.
	KindIO ErrorKind = iota
	// KindCorrupt covers every malformed-patch failure.
	KindCorrupt
)

// Kind returns the classification of err.
func Kind(err error) ErrorKind {
	if errors.Is(err, ErrCorrupt) {
		return KindCorrupt
	}
	return KindIO
}

// MessageCap is the capacity of a Report's message slot, in bytes.
const MessageCap = 64

// Report is a bounded write-once slot describing the first failure of
// an operation. Later failures (during cleanup, say) never overwrite an
// already-filled slot.
type Report struct {
	msg    string
	filled bool
}

// Fill records err's message, truncated to MessageCap bytes, unless the
// slot is already filled. Filling with nil is a no-op.
func (r *Report) Fill(err error) {
	if err == nil || r.filled {
		return
	}

	msg := err.Error()
	if len(msg) > MessageCap {
		msg = msg[:MessageCap]
	}
	r.msg = msg
	r.filled = true
}

// Filled reports whether a failure has been recorded.
func (r *Report) Filled() bool {
	return r.filled
}

// Message returns the recorded failure message, or "" if none.
func (r *Report) Message() string {
	return r.msg
}
