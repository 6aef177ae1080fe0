// Package toon renders values in the TOON text format, a compact
// indentation-based encoding that tabularizes uniform object arrays.
// It exists for LLM-facing surfaces where JSON's punctuation is wasted
// tokens; everything else in provq speaks JSON.
package toon

import (
	"fmt"
	"strconv"
	"strings"

	"provq/internal/errors"
)

// Options control the rendered shape.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// Delimiter separates tabular fields and inline array elements.
	Delimiter string
	// LengthMarker is printed before the element count inside brackets,
	// e.g. "#" renders [#3]. Empty renders [3].
	LengthMarker string
}

// DefaultOptions are tuned for prompt payloads: 2-space indent, comma
// delimiter, no length marker.
func DefaultOptions() Options {
	return Options{Indent: 2, Delimiter: ",", LengthMarker: ""}
}

// Encode renders any JSON-serializable value as TOON text.
func Encode(v interface{}, opts Options) (string, error) {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	if opts.Delimiter == "" {
		opts.Delimiter = ","
	}

	normalized, err := normalizeValue(v)
	if err != nil {
		return "", errors.New(errors.EncodingFailed, "value cannot be rendered as TOON", err)
	}

	enc := &encoder{opts: opts}
	enc.encodeRoot(normalized)
	return strings.TrimRight(enc.sb.String(), "\n"), nil
}

type encoder struct {
	opts Options
	sb   strings.Builder
}

func (e *encoder) indent(level int) string {
	return strings.Repeat(" ", level*e.opts.Indent)
}

func (e *encoder) bracket(n int) string {
	return "[" + e.opts.LengthMarker + strconv.Itoa(n) + "]"
}

func (e *encoder) line(level int, text string) {
	e.sb.WriteString(e.indent(level))
	e.sb.WriteString(text)
	e.sb.WriteByte('\n')
}

func (e *encoder) encodeRoot(v interface{}) {
	switch t := v.(type) {
	case object:
		e.encodeFields(t, 0)
	case []interface{}:
		e.encodeArray("", t, 0)
	default:
		e.line(0, e.scalar(v))
	}
}

func (e *encoder) encodeFields(obj object, level int) {
	for _, f := range obj {
		e.encodeField(f.key, f.value, level)
	}
}

func (e *encoder) encodeField(key string, v interface{}, level int) {
	k := e.quoteKey(key)
	switch t := v.(type) {
	case object:
		if len(t) == 0 {
			e.line(level, k+":")
			return
		}
		e.line(level, k+":")
		e.encodeFields(t, level+1)
	case []interface{}:
		e.encodeArray(k, t, level)
	default:
		e.line(level, k+": "+e.scalar(v))
	}
}

func (e *encoder) encodeArray(key string, items []interface{}, level int) {
	head := key + e.bracket(len(items))

	if len(items) == 0 {
		e.line(level, head+":")
		return
	}

	if scalars, ok := allScalars(items); ok {
		e.line(level, head+": "+strings.Join(e.scalarRow(scalars), e.opts.Delimiter))
		return
	}

	if keys, rows, ok := tabular(items); ok {
		e.line(level, head+"{"+strings.Join(e.quoteKeys(keys), e.opts.Delimiter)+"}:")
		for _, row := range rows {
			e.line(level+1, strings.Join(e.scalarRow(row), e.opts.Delimiter))
		}
		return
	}

	e.line(level, head+":")
	for _, item := range items {
		e.encodeListItem(item, level+1)
	}
}

// encodeListItem renders one element of a non-uniform array in dash form.
func (e *encoder) encodeListItem(v interface{}, level int) {
	switch t := v.(type) {
	case object:
		if len(t) == 0 {
			e.line(level, "-")
			return
		}
		first := t[0]
		e.sb.WriteString(e.indent(level))
		e.sb.WriteString("- ")
		e.encodeInlineField(first, level)
		for _, f := range t[1:] {
			e.encodeField(f.key, f.value, level+1)
		}
	case []interface{}:
		if scalars, ok := allScalars(t); ok {
			e.line(level, "- "+e.bracket(len(t))+": "+strings.Join(e.scalarRow(scalars), e.opts.Delimiter))
			return
		}
		e.line(level, "- "+e.bracket(len(t))+":")
		for _, item := range t {
			e.encodeListItem(item, level+1)
		}
	default:
		e.line(level, "- "+e.scalar(v))
	}
}

// encodeInlineField writes a field value on the current (dash) line; nested
// structures continue on following lines.
func (e *encoder) encodeInlineField(f field, level int) {
	k := e.quoteKey(f.key)
	switch t := f.value.(type) {
	case object:
		e.sb.WriteString(k + ":\n")
		e.encodeFields(t, level+2)
	case []interface{}:
		if scalars, ok := allScalars(t); ok {
			e.sb.WriteString(k + e.bracket(len(t)) + ": " +
				strings.Join(e.scalarRow(scalars), e.opts.Delimiter) + "\n")
			return
		}
		e.sb.WriteString(k + e.bracket(len(t)) + ":\n")
		for _, item := range t {
			e.encodeListItem(item, level+2)
		}
	default:
		e.sb.WriteString(k + ": " + e.scalar(f.value) + "\n")
	}
}

// allScalars reports whether every element is a scalar.
func allScalars(items []interface{}) ([]interface{}, bool) {
	for _, item := range items {
		switch item.(type) {
		case object, []interface{}:
			return nil, false
		}
	}
	return items, true
}

// tabular checks whether the array is a uniform list of flat objects: every
// element an object with the same key sequence and only scalar values. Such
// arrays render as a header row plus one delimited line per element.
func tabular(items []interface{}) ([]string, [][]interface{}, bool) {
	var keys []string
	rows := make([][]interface{}, 0, len(items))

	for i, item := range items {
		obj, ok := item.(object)
		if !ok {
			return nil, nil, false
		}
		if i == 0 {
			for _, f := range obj {
				keys = append(keys, f.key)
			}
			if len(keys) == 0 {
				return nil, nil, false
			}
		} else {
			if len(obj) != len(keys) {
				return nil, nil, false
			}
			for j, f := range obj {
				if f.key != keys[j] {
					return nil, nil, false
				}
			}
		}

		row := make([]interface{}, 0, len(obj))
		for _, f := range obj {
			switch f.value.(type) {
			case object, []interface{}:
				return nil, nil, false
			}
			row = append(row, f.value)
		}
		rows = append(rows, row)
	}
	return keys, rows, true
}

func (e *encoder) scalarRow(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, e.scalar(v))
	}
	return out
}

func (e *encoder) scalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		if e.needsQuoting(t) {
			return strconv.Quote(t)
		}
		return t
	default:
		return fmt.Sprint(t)
	}
}

// needsQuoting reports whether a string would be ambiguous unquoted: it
// could parse as another scalar, collide with structural characters, or
// lose surrounding whitespace.
func (e *encoder) needsQuoting(s string) bool {
	if s == "" || s == "null" || s == "true" || s == "false" || s == "-" {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if strings.ContainsAny(s, ":\"\n\r\t{}[]") || strings.Contains(s, e.opts.Delimiter) {
		return true
	}
	if strings.HasPrefix(s, "- ") {
		return true
	}
	return false
}

func (e *encoder) quoteKey(k string) string {
	if k == "" || strings.ContainsAny(k, ": \"\n\r\t{}[]") || strings.Contains(k, e.opts.Delimiter) {
		return strconv.Quote(k)
	}
	return k
}

func (e *encoder) quoteKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.quoteKey(k))
	}
	return out
}
