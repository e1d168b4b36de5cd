package csv

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/shapestone/stream-csv/internal/record"
	"github.com/shapestone/stream-csv/internal/scan"
)

// NewReader returns a Reader over the UTF-8 text of r using the default
// dialect.
func NewReader[T any](r io.Reader, d Deserializer[T]) *Reader[T] {
	rd, err := NewReaderWithOptions(r, DefaultOptions(), d)
	if err != nil {
		// DefaultOptions always validates.
		panic(err)
	}
	return rd
}

// NewReaderWithOptions returns a Reader over the UTF-8 text of r with a
// custom dialect.
func NewReaderWithOptions[T any](r io.Reader, opts Options, d Deserializer[T]) (*Reader[T], error) {
	return NewReaderFromSource(NewCharSource(r), opts, d)
}

// NewReaderFromSource returns a Reader pulling characters from src.
// Every other constructor in this package resolves to this one.
func NewReaderFromSource[T any](src CharSource, opts Options, d Deserializer[T]) (*Reader[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	line := record.NewLine()
	return &Reader[T]{
		scanner: scan.NewScanner(src, line, opts.Comma, opts.Quote),
		line:    line,
		src:     src,
		des:     d,
	}, nil
}

// Open opens the file at path as UTF-8 CSV with the default dialect.
// The returned reader owns the file; Close releases it.
func Open[T any](path string, d Deserializer[T]) (*Reader[T], error) {
	return OpenWithOptions(path, DefaultOptions(), d)
}

// OpenWithOptions opens the file at path as UTF-8 CSV with a custom
// dialect.
func OpenWithOptions[T any](path string, opts Options, d Deserializer[T]) (*Reader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "csv: open file")
	}

	r, err := NewReaderWithOptions(f, opts, d)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// OpenEncoded opens the file at path and decodes it from enc before
// scanning. Use it for inputs that are not UTF-8:
//
//	r, err := csv.OpenEncoded(path, charmap.ISO8859_1, csv.DefaultOptions(), deser)
func OpenEncoded[T any](path string, enc encoding.Encoding, opts Options, d Deserializer[T]) (*Reader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "csv: open file")
	}

	decoded := transform.NewReader(f, enc.NewDecoder())
	src := &runeSource{r: bufio.NewReader(decoded), c: f}

	r, err := NewReaderFromSource(src, opts, d)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Process opens path, feeds every record to fn and closes the reader on
// all exit paths. It stops at the first parse, conversion or fn error.
func Process[T any](path string, opts Options, d Deserializer[T], fn func(T) error) (err error) {
	r, err := OpenWithOptions(path, opts, d)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for {
		ok, err := r.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		v, err := r.Next()
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}
