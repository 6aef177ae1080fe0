package toon

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// The encoder works over a small normalized value model rather than raw
// interface{} values: objects keep an explicit field order (struct order
// for structs, sorted keys for maps) so output is deterministic.

type field struct {
	key   string
	value interface{}
}

type object []field

// normalizeValue converts an arbitrary JSON-serializable value into the
// encoder's model: object, []interface{}, or a scalar (string, bool,
// numeric, nil).
func normalizeValue(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Map:
		return normalizeMap(val)
	case reflect.Slice, reflect.Array:
		return normalizeSlice(val)
	case reflect.Struct:
		return normalizeStruct(val)
	case reflect.Interface:
		if val.IsNil() {
			return nil, nil
		}
		return normalizeValue(val.Interface())
	case reflect.String:
		return val.String(), nil
	case reflect.Bool:
		return val.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return val.Float(), nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", val.Kind())
	}
}

func normalizeMap(val reflect.Value) (interface{}, error) {
	if val.IsNil() {
		return object{}, nil
	}

	out := make(object, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		nv, err := normalizeValue(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, field{key: fmt.Sprint(iter.Key().Interface()), value: nv})
	}
	// Map iteration order is random; sort for deterministic output.
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out, nil
}

func normalizeSlice(val reflect.Value) (interface{}, error) {
	out := make([]interface{}, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		nv, err := normalizeValue(val.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, nv)
	}
	return out, nil
}

func normalizeStruct(val reflect.Value) (interface{}, error) {
	typ := val.Type()
	out := object{}
	for i := 0; i < val.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}

		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, omitEmpty := parseJSONTag(tag)
		if name == "" {
			name = f.Name
		}

		nv, err := normalizeValue(val.Field(i).Interface())
		if err != nil {
			return nil, err
		}
		if omitEmpty && isEmpty(nv) {
			continue
		}
		out = append(out, field{key: name, value: nv})
	}
	return out, nil
}

func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	case []interface{}:
		return len(t) == 0
	case object:
		return len(t) == 0
	}
	return false
}
