package counter

import "io"

// Reader wraps an io.Reader and counts every byte that passes through.
type Reader struct {
	count  int64
	reader io.Reader

	onRead CountCallback
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{reader: reader}
}

func NewReaderCallback(onRead CountCallback, reader io.Reader) *Reader {
	return &Reader{
		reader: reader,
		onRead: onRead,
	}
}

// Count returns the number of bytes read so far.
func (r *Reader) Count() int64 {
	return r.count
}

func (r *Reader) Read(buffer []byte) (n int, err error) {
	n, err = r.reader.Read(buffer)

	r.count += int64(n)
	if r.onRead != nil {
		r.onRead(r.count)
	}
	return
}
