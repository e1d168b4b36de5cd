package csv

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// CharSource supplies decoded characters to a Reader. ReadChars fills p
// and returns the number of characters written; io.EOF signals the end
// of input. The reader core never decodes bytes itself — a CharSource
// hands it an already-decoded character stream.
type CharSource interface {
	ReadChars(p []rune) (n int, err error)
	Close() error
}

// runeSource adapts a buffered reader of UTF-8 text to a CharSource.
type runeSource struct {
	r io.RuneReader
	c io.Closer // nil when the underlying reader needs no closing
}

// NewCharSource returns a CharSource decoding UTF-8 text from r. If r
// implements io.Closer, closing the source closes r as well.
func NewCharSource(r io.Reader) CharSource {
	src := &runeSource{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		src.c = c
	}
	return src
}

func (s *runeSource) ReadChars(p []rune) (int, error) {
	for i := range p {
		c, _, err := s.r.ReadRune()
		if err != nil {
			if i > 0 && err == io.EOF {
				return i, nil
			}
			return i, err
		}
		p[i] = c
	}
	return len(p), nil
}

func (s *runeSource) Close() error {
	if s.c == nil {
		return nil
	}
	return errors.Wrap(s.c.Close(), "close underlying reader")
}
