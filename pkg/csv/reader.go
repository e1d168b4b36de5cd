// Package csv reads character streams of RFC-4180-like CSV text as a
// lazy sequence of typed records.
//
// A Reader couples the scanning core with a Deserializer that converts
// each logical line's fields into a value of type T:
//
//	type pair struct{ Key, Value string }
//
//	r := csv.NewReader(file, csv.DeserializerFunc[pair](func(l csv.Line) (pair, error) {
//		if l.FieldCount() != 2 {
//			return pair{}, fmt.Errorf("want 2 fields, got %d", l.FieldCount())
//		}
//		return pair{l.Field(0), l.Field(1)}, nil
//	}))
//	defer r.Close()
//
//	for v, err := range r.All() {
//		if err != nil {
//			// handle error
//		}
//		// use v
//	}
//
// The dialect is configurable through Options (field delimiter and
// quote character). Within a quoted field a doubled quote character
// denotes one literal quote, and a quoted field may span raw newlines.
// A quote appearing inside an unquoted field, or a carriage return not
// followed by a line feed, is a ParseError.
//
// Readers are single-pass, forward-only and not safe for concurrent
// use. Closing a reader concurrently with an in-flight read is not
// safe either; callers needing cancellation must serialize it with
// reads themselves.
package csv

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/shapestone/stream-csv/internal/record"
	"github.com/shapestone/stream-csv/internal/scan"
)

// readerState tracks the reader lifecycle.
type readerState uint8

const (
	elementNotRead readerState = iota // no line buffered yet
	elementRead                       // a line is scanned but not consumed
	noSuchElement                     // input exhausted; terminal
	readerClosed                      // Close was called; terminal
)

// Reader reads CSV records of type T from a character source. Use one
// of the constructors in this package; the zero value is not usable.
type Reader[T any] struct {
	scanner *scan.Scanner
	line    *record.Line
	src     CharSource
	des     Deserializer[T]
	state   readerState
}

// HasNext reports whether Next would return a record. It scans at most
// one logical line: repeated calls without an intervening Next return
// the same answer and do not re-scan. Malformed input surfaces here as
// a ParseError.
func (r *Reader[T]) HasNext() (bool, error) {
	switch r.state {
	case elementRead:
		return true, nil
	case noSuchElement:
		return false, nil
	case readerClosed:
		return false, ErrReaderClosed
	}

	ok, err := r.scanner.ScanLine()
	if err != nil {
		return false, wrapScanError(err)
	}
	if !ok {
		r.state = noSuchElement
		return false, nil
	}
	r.state = elementRead
	return true, nil
}

// Next returns the next record. It returns ErrNoMoreRecords once the
// input is exhausted. A Deserializer failure is reported as a
// ConversionError; the malformed record is consumed, so the following
// record remains readable.
func (r *Reader[T]) Next() (T, error) {
	var zero T

	ok, err := r.HasNext()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrNoMoreRecords
	}

	v, err := r.des.Deserialize(r.line)
	r.state = elementNotRead
	if err != nil {
		cerr := &ConversionError{Fields: r.line.Strings(), Err: err}
		r.line.Clear()
		return zero, cerr
	}
	r.line.Clear()
	return v, nil
}

// Skip advances past up to n records without deserializing them. A line
// already scanned by HasNext counts as the first skipped record.
// Reaching the end of input before n records were skipped is not an
// error; the reader is simply exhausted.
func (r *Reader[T]) Skip(n int) error {
	switch r.state {
	case readerClosed:
		return ErrReaderClosed
	case noSuchElement:
		return nil
	}
	if n <= 0 {
		return nil
	}

	if r.state == elementRead {
		r.state = elementNotRead
		r.line.Clear()
		n--
		if n == 0 {
			return nil
		}
	}

	skipped, err := r.scanner.SkipLines(n)
	if err != nil {
		return wrapScanError(err)
	}
	if skipped < n {
		r.state = noSuchElement
	}
	return nil
}

// Close releases the underlying character source. It is idempotent;
// every other operation fails with ErrReaderClosed afterwards.
func (r *Reader[T]) Close() error {
	if r.state == readerClosed {
		return nil
	}
	r.state = readerClosed

	src := r.src
	r.scanner, r.line, r.src, r.des = nil, nil, nil, nil

	if err := src.Close(); err != nil {
		return errors.Wrap(err, "csv: close character source")
	}
	return nil
}

// All adapts the reader to Go's range-over-func iteration. The sequence
// yields each record in order; on a parse or conversion error it yields
// the error once and stops. All does not close the reader.
func (r *Reader[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			ok, err := r.HasNext()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}

			v, err := r.Next()
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll reads every remaining record into a slice. Records read
// before an error are returned alongside it.
func (r *Reader[T]) ReadAll() ([]T, error) {
	var out []T
	for {
		ok, err := r.HasNext()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}

		v, err := r.Next()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}
