package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies what a [Value] holds.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Value is a single table cell: a number, text, bool, or [Missing].
//
// The zero Value is Missing.
type Value struct {
	kind Kind
	num  float64
	text string
	b    bool
}

// Missing marks a value that is absent or could not be parsed. It is distinct from 0 and "".
var Missing = Value{}

// Number returns a numeric Value. NaN is stored as [Missing].
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing
	}
	return Value{kind: KindNumber, num: f}
}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the number held by v; ok is false for anything that isn't a number.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the text held by v; ok is false for anything that isn't text.
func (v Value) Str() (s string, ok bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Boolean returns the bool held by v; ok is false for anything that isn't a bool.
func (v Value) Boolean() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// String renders v for display. Missing renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

// MarshalJSON writes Missing as null and the other kinds as their JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsInf(v.num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// ParseNumber coerces v to a number, returning [Missing] when it can't.
//
// Numbers pass through, text is parsed after trimming spaces, and everything else is Missing.
// Only finite numbers come out of text: "inf" and overflowing literals are Missing.
func ParseNumber(v Value) Value {
	switch v.kind {
	case KindNumber:
		return v
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsInf(f, 0) {
			return Missing
		}
		return Number(f)
	default:
		return Missing
	}
}
