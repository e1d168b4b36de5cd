package csv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldSetter assigns one CSV field's text to a struct field.
type fieldSetter func(field reflect.Value, value string) error

// structInfo is the cached per-type setter table for the positional
// struct deserializer.
type structInfo struct {
	// indexes maps CSV field position to struct field index.
	indexes []int
	// setters holds the pre-computed setter per CSV field position.
	setters []fieldSetter
}

var structCache sync.Map // reflect.Type -> *structInfo

// NewStructDeserializer returns a Deserializer assigning fields to the
// exported fields of the struct type T in declaration order: field 0 to
// the first exported field, field 1 to the second, and so on. Fields
// tagged `csv:"-"` are skipped. A line with fewer fields than T leaves
// the remaining struct fields at their zero values; a line with more is
// rejected.
//
// Supported field types: string, signed and unsigned integers, floats
// and bool (true/false, t/f, 1/0, case-insensitive). An empty CSV field
// yields the zero value.
func NewStructDeserializer[T any]() (Deserializer[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("csv: struct deserializer needs a struct type, got %s", typ)
	}

	info, err := getStructInfo(typ)
	if err != nil {
		return nil, err
	}

	return DeserializerFunc[T](func(line Line) (T, error) {
		var v T
		rv := reflect.ValueOf(&v).Elem()

		n := line.FieldCount()
		if n > len(info.indexes) {
			return v, fmt.Errorf("want at most %d fields, got %d", len(info.indexes), n)
		}
		for i := 0; i < n; i++ {
			if err := info.setters[i](rv.Field(info.indexes[i]), line.Field(i)); err != nil {
				return v, err
			}
		}
		return v, nil
	}), nil
}

// getStructInfo retrieves or computes the setter table for typ. Results
// are cached per type.
func getStructInfo(typ reflect.Type) (*structInfo, error) {
	if cached, ok := structCache.Load(typ); ok {
		return cached.(*structInfo), nil
	}

	info := &structInfo{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}

		setter := setterFor(field.Type)
		if setter == nil {
			return nil, fmt.Errorf("csv: unsupported field type %s for %s.%s", field.Type, typ, field.Name)
		}
		info.indexes = append(info.indexes, i)
		info.setters = append(info.setters, setter)
	}

	structCache.Store(typ, info)
	return info, nil
}

// setterFor returns a pre-computed setter for the field type, so the
// per-record path avoids a kind switch. Unsupported kinds yield nil.
func setterFor(t reflect.Type) fieldSetter {
	switch t.Kind() {
	case reflect.String:
		return func(field reflect.Value, value string) error {
			field.SetString(value)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetInt(0)
				return nil
			}
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("cannot parse %q as int: %v", value, err)
			}
			if field.OverflowInt(i) {
				return fmt.Errorf("value %d overflows %s", i, field.Type())
			}
			field.SetInt(i)
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetUint(0)
				return nil
			}
			u, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("cannot parse %q as uint: %v", value, err)
			}
			if field.OverflowUint(u) {
				return fmt.Errorf("value %d overflows %s", u, field.Type())
			}
			field.SetUint(u)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetFloat(0)
				return nil
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("cannot parse %q as float: %v", value, err)
			}
			if field.OverflowFloat(f) {
				return fmt.Errorf("value %v overflows %s", f, field.Type())
			}
			field.SetFloat(f)
			return nil
		}

	case reflect.Bool:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetBool(false)
				return nil
			}
			b, err := parseBool(value)
			if err != nil {
				return err
			}
			field.SetBool(b)
			return nil
		}

	default:
		return nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "t":
		return true, nil
	case "false", "0", "f":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %q", s)
	}
}
