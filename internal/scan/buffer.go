package scan

import (
	"io"

	"github.com/pkg/errors"
)

// CharSource is a pull-based supplier of decoded characters. ReadChars
// fills p and reports the number of characters written; io.EOF signals
// the end of input.
type CharSource interface {
	ReadChars(p []rune) (n int, err error)
	Close() error
}

// endOfInput is served by charBuffer.read once the source is drained.
const endOfInput int32 = -1

// charBuffer is a fixed-capacity character buffer refilled in bulk from
// a CharSource. Invariant: next <= size <= cap(buf). Once the source
// reports end of input, read returns the endOfInput sentinel forever
// without touching the source again.
type charBuffer struct {
	src     CharSource
	buf     []rune
	next    int
	size    int
	done    bool
	readErr error // source error delivered after its partial data
}

func newCharBuffer(src CharSource, size int) *charBuffer {
	return &charBuffer{src: src, buf: make([]rune, size)}
}

// read returns the next character, or the endOfInput sentinel. I/O
// failures from the source are fatal and not retried.
func (b *charBuffer) read() (int32, error) {
	if b.next >= b.size {
		if b.done {
			return endOfInput, nil
		}
		if err := b.refill(); err != nil {
			return 0, err
		}
		if b.next >= b.size {
			return endOfInput, nil
		}
	}

	c := b.buf[b.next]
	b.next++
	return c, nil
}

// refill performs one bulk read from the source. A non-positive count
// marks the buffer drained.
func (b *charBuffer) refill() error {
	if b.readErr != nil {
		err := b.readErr
		b.readErr = nil
		b.done = true
		return errors.Wrap(err, "read from character source")
	}

	n, err := b.src.ReadChars(b.buf)
	if n <= 0 {
		b.done = true
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "read from character source")
		}
		return nil
	}

	b.next, b.size = 0, n
	switch {
	case err == io.EOF:
		b.done = true
	case err != nil:
		b.readErr = err
	}
	return nil
}
