// Package record provides the reusable accumulator holding the fields
// of one logical CSV line.
package record

import "unicode/utf8"

// Line accumulates field text for the current logical line. All field
// bytes live in one growable buffer with per-field end offsets, so a
// Line can be cleared and reused across thousands of lines without
// reallocating in the common case.
//
// A field with zero appended characters is the empty string; Line does
// not distinguish empty from absent fields.
type Line struct {
	data []byte
	ends []int
}

// NewLine returns an empty Line with storage sized for typical rows.
func NewLine() *Line {
	return &Line{
		data: make([]byte, 0, 256),
		ends: make([]int, 0, 16),
	}
}

// Append adds one character to the field currently being accumulated.
func (l *Line) Append(c rune) {
	if c < utf8.RuneSelf {
		l.data = append(l.data, byte(c))
		return
	}
	l.data = utf8.AppendRune(l.data, c)
}

// MarkField closes the current field at the current buffer position.
func (l *Line) MarkField() {
	l.ends = append(l.ends, len(l.data))
}

// Clear resets the line to zero fields, keeping the backing storage.
func (l *Line) Clear() {
	l.data = l.data[:0]
	l.ends = l.ends[:0]
}

// FieldCount returns the number of fields marked since the last Clear.
func (l *Line) FieldCount() int { return len(l.ends) }

// Field returns the text of field i. Like a slice index, it panics if i
// is out of range.
func (l *Line) Field(i int) string {
	start := 0
	if i > 0 {
		start = l.ends[i-1]
	}
	return string(l.data[start:l.ends[i]])
}

// Strings copies all fields into a fresh slice.
func (l *Line) Strings() []string {
	out := make([]string, len(l.ends))
	for i := range out {
		out[i] = l.Field(i)
	}
	return out
}
