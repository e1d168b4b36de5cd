package csv

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Writer emits CSV records. It exists to close the round trip with
// Reader: fields containing the delimiter, the quote character, or line
// breaks are quoted, and quote characters inside quoted fields are
// doubled. Records are LF-terminated. Call Flush after the last Write.
type Writer struct {
	w    *bufio.Writer
	opts Options
}

// NewWriter returns a Writer using the default dialect.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), opts: DefaultOptions()}
}

// NewWriterWithOptions returns a Writer using a custom dialect.
func NewWriterWithOptions(w io.Writer, opts Options) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Writer{w: bufio.NewWriter(w), opts: opts}, nil
}

// scratchPool reuses the escape buffer across Write calls.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64)
		return &b
	},
}

// Write emits one record.
func (w *Writer) Write(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := w.w.WriteRune(w.opts.Comma); err != nil {
				return errors.Wrap(err, "csv: write delimiter")
			}
		}
		if err := w.writeField(field); err != nil {
			return err
		}
	}
	return errors.Wrap(w.w.WriteByte('\n'), "csv: write record terminator")
}

func (w *Writer) writeField(field string) error {
	if !w.needsQuoting(field) {
		_, err := w.w.WriteString(field)
		return errors.Wrap(err, "csv: write field")
	}

	p := scratchPool.Get().(*[]byte)
	buf := (*p)[:0]

	buf = utf8.AppendRune(buf, w.opts.Quote)
	for _, r := range field {
		if r == w.opts.Quote {
			buf = utf8.AppendRune(buf, w.opts.Quote)
		}
		buf = utf8.AppendRune(buf, r)
	}
	buf = utf8.AppendRune(buf, w.opts.Quote)

	_, err := w.w.Write(buf)
	if cap(buf) <= 4096 {
		*p = buf[:0]
		scratchPool.Put(p)
	}
	return errors.Wrap(err, "csv: write field")
}

// needsQuoting reports whether the field must be wrapped in quotes.
func (w *Writer) needsQuoting(field string) bool {
	return strings.ContainsRune(field, w.opts.Comma) ||
		strings.ContainsRune(field, w.opts.Quote) ||
		strings.ContainsAny(field, "\r\n")
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return errors.Wrap(w.w.Flush(), "csv: flush")
}
