package csv

// Line is the read-only view of one scanned logical line handed to a
// Deserializer. Field indices run from 0 to FieldCount()-1; Field
// panics on an out-of-range index, like a slice. A field with no
// characters is the empty string — empty and absent fields are not
// distinguished.
type Line interface {
	FieldCount() int
	Field(i int) string
}

// Deserializer converts an accumulated line into a value of type T.
// Returning an error rejects the record; the reader wraps it in a
// ConversionError and moves on. Implementations must not retain the
// Line, whose storage is reused for the next record.
type Deserializer[T any] interface {
	Deserialize(line Line) (T, error)
}

// DeserializerFunc adapts a function to the Deserializer interface.
type DeserializerFunc[T any] func(line Line) (T, error)

// Deserialize calls f.
func (f DeserializerFunc[T]) Deserialize(line Line) (T, error) { return f(line) }

// Raw returns a Deserializer that copies each line's fields verbatim.
func Raw() Deserializer[[]string] {
	return DeserializerFunc[[]string](func(line Line) ([]string, error) {
		fields := make([]string, line.FieldCount())
		for i := range fields {
			fields[i] = line.Field(i)
		}
		return fields, nil
	})
}
