package scan

import (
	"fmt"

	"github.com/shapestone/stream-csv/internal/record"
)

// DefaultBufferSize is the refill capacity used by NewScanner, in
// characters.
const DefaultBufferSize = 8192

// EndOfInput is the value of UnexpectedCharError.Char when the input
// ended where more characters were required.
const EndOfInput int32 = endOfInput

// UnexpectedCharError reports a character that is not valid in the
// scanner's current state. Line is 1-based.
type UnexpectedCharError struct {
	Line int
	Char int32
}

func (e *UnexpectedCharError) Error() string {
	if e.Char == EndOfInput {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected character %q", e.Char)
}

// Scanner drives characters from a CharSource through the transition
// tables, accumulating the current logical line into a record.Line. It
// owns its buffer and accumulator exclusively and is not safe for
// concurrent use.
type Scanner struct {
	buf   *charBuffer
	line  *record.Line
	delim rune
	quote rune
	lines int
}

// NewScanner returns a Scanner that accumulates lines into line. The
// caller is responsible for clearing line between records.
func NewScanner(src CharSource, line *record.Line, delim, quote rune) *Scanner {
	return &Scanner{
		buf:   newCharBuffer(src, DefaultBufferSize),
		line:  line,
		delim: delim,
		quote: quote,
	}
}

// Lines returns the number of completed logical lines so far.
func (s *Scanner) Lines() int { return s.lines }

// columnOf classifies one character against the configured delimiter
// and quote characters.
func (s *Scanner) columnOf(c int32) column {
	switch c {
	case '\r':
		return columnCarriage
	case '\n':
		return columnLineFeed
	case endOfInput:
		return columnEndOfInput
	case s.delim:
		return columnDelim
	case s.quote:
		return columnQuote
	}
	return columnOther
}

// ScanLine scans one logical line into the accumulator. It returns true
// when a line was produced and false when the input is exhausted with
// no pending line. Malformed input yields an UnexpectedCharError.
func (s *Scanner) ScanLine() (bool, error) {
	st := stateStartLine

	var c int32
	for {
		var err error
		if c, err = s.buf.read(); err != nil {
			return false, err
		}

		col := s.columnOf(c)
		act := actions[st][col]

		if act&actAppend != 0 {
			s.line.Append(c)
		} else if act&actField != 0 {
			s.line.MarkField()

			if act&actLine != 0 {
				s.lines++
				return true, nil
			}
		}

		st = transitions[st][col]
		if st >= stateEndFile {
			break
		}
	}

	if st == stateEndFile {
		return false, nil
	}
	return false, s.unexpected(c)
}

// SkipLines advances past up to n logical lines without materializing
// any fields. It returns the number of lines actually skipped; reaching
// the end of input before n lines is not an error.
func (s *Scanner) SkipLines(n int) (int, error) {
	skipped := 0
	st := stateStartLine

	var c int32
	for skipped < n {
		var err error
		if c, err = s.buf.read(); err != nil {
			return skipped, err
		}

		col := s.columnOf(c)
		if actions[st][col]&actLine != 0 {
			s.lines++
			skipped++
			st = stateStartLine
			continue
		}

		st = transitions[st][col]
		if st == stateEndFile {
			return skipped, nil
		}
		if st == stateError {
			return skipped, s.unexpected(c)
		}
	}

	return skipped, nil
}

func (s *Scanner) unexpected(c int32) error {
	return &UnexpectedCharError{Line: s.lines + 1, Char: c}
}
