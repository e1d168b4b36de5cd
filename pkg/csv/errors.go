package csv

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/shapestone/stream-csv/internal/scan"
)

var (
	// ErrReaderClosed is returned by every operation except Close once
	// the reader has been closed.
	ErrReaderClosed = errors.New("csv: reader is closed")

	// ErrNoMoreRecords is returned by Next when the input is exhausted.
	ErrNoMoreRecords = errors.New("csv: no more records")
)

// EndOfInput is the value of ParseError.Char when the input ended where
// more characters were required, for example inside a quoted field.
const EndOfInput rune = rune(scan.EndOfInput)

// ParseError reports malformed CSV input: an unexpected character for
// the scanner's current state, such as a quote inside an unquoted field
// or a bare \r not followed by \n. It is fatal for the current scan;
// the reader performs no recovery and must not be resumed mid-line.
type ParseError struct {
	// Line is the 1-based logical line on which the error occurred.
	Line int
	// Char is the offending character, or EndOfInput.
	Char rune
	// Err is the underlying error.
	Err error
}

// Error returns a message with the 1-based line number.
func (e *ParseError) Error() string {
	return fmt.Sprintf("csv: parse error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// ConversionError reports a Deserializer failure on a well-formed line.
// The raw field values are retained for diagnostics. The offending
// record is consumed, so iteration may continue past it.
type ConversionError struct {
	// Fields holds the raw field values of the rejected line.
	Fields []string
	// Err is the deserializer's error.
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("csv: cannot convert record %q: %v", e.Fields, e.Err)
}

// Unwrap returns the deserializer's error.
func (e *ConversionError) Unwrap() error { return e.Err }

// wrapScanError lifts scanner errors into the public taxonomy. I/O
// failures pass through untouched.
func wrapScanError(err error) error {
	var uc *scan.UnexpectedCharError
	if errors.As(err, &uc) {
		return &ParseError{Line: uc.Line, Char: rune(uc.Char), Err: err}
	}
	return err
}
