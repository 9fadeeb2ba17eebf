package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is one node of an arbitrary JSON document, used for stroke and sketch
// metadata. Numbers keep the literal they were decoded from, so a value
// re-encodes to the same number text.
//
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	num  string
	str  string
	arr  []Value
	obj  map[string]Value
}

// Meta is the open metadata bag carried by strokes and sketches.
type Meta map[string]Value

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Float returns a number value. NaN and infinities have no JSON form and
// become null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, num: string(appendFloat(nil, f))}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, num: strconv.FormatInt(i, 10)}
}

func Uint(u uint64) Value {
	return Value{kind: KindNumber, num: strconv.FormatUint(u, 10)}
}

// Number returns a number value holding the literal text as is.
func Number(literal string) (Value, error) {
	if literal == "" || (literal[0] != '-' && (literal[0] < '0' || literal[0] > '9')) || !json.Valid([]byte(literal)) {
		return Value{}, fmt.Errorf("%q is not a JSON number", literal)
	}
	return Value{kind: KindNumber, num: literal}, nil
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Array(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: KindArray, arr: values}
}

func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

// ValueOf converts any JSON-marshalable Go value, including strokes and
// sketches, into a Value.
func ValueOf(v any) (Value, error) {
	if value, ok := v.(Value); ok {
		return value, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("failed to convert %T to a metadata value: %w", v, err)
	}
	var value Value
	if err := value.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return value, nil
}

// Decode stores the value into dst the way json.Unmarshal would.
func (v Value) Decode(dst any) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (b, ok bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.num, 64)
	return f, err == nil
}

func (v Value) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(v.num, 10, 64)
	return i, err == nil
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns the elements of an array value. The slice is shared with v.
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

// AsObject returns the fields of an object value. The map is shared with v.
func (v Value) AsObject() (map[string]Value, bool) {
	return v.obj, v.kind == KindObject
}

// Literal returns the number text of a number value.
func (v Value) Literal() (string, bool) {
	return v.num, v.kind == KindNumber
}

// Equal reports whether v and other hold the same document. Integer literals
// compare as integers and other numbers as floats; an integer never equals a
// fractional literal, even when they denote the same quantity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return numbersEqual(v.num, other.num)
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return Meta(v.obj).Equal(Meta(other.obj))
	}
	return false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		return Value{kind: KindObject, obj: Meta(v.obj).Clone()}
	default:
		return v
	}
}

func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "null"
	}
	return string(data)
}

// Equal compares two metadata bags key by key. A nil bag equals an empty one.
func (m Meta) Equal(other Meta) bool {
	if len(m) != len(other) {
		return false
	}
	for key, value := range m {
		otherValue, ok := other[key]
		if !ok || !value.Equal(otherValue) {
			return false
		}
	}
	return true
}

// Clone deep-copies the bag. The copy of a nil bag is an empty bag.
func (m Meta) Clone() Meta {
	out := make(Meta, len(m))
	for key, value := range m {
		out[key] = value.Clone()
	}
	return out
}

// Set stores v under key after converting it with ValueOf.
func (m Meta) Set(key string, v any) error {
	value, err := ValueOf(v)
	if err != nil {
		return err
	}
	m[key] = value
	return nil
}

func (m Meta) sortedKeys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isIntegerLiteral(literal string) bool {
	return !strings.ContainsAny(literal, ".eE")
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}

	aInt, bInt := isIntegerLiteral(a), isIntegerLiteral(b)
	if aInt != bInt {
		return false
	}

	if aInt {
		if x, err := strconv.ParseInt(a, 10, 64); err == nil {
			y, err := strconv.ParseInt(b, 10, 64)
			return err == nil && x == y
		}
		if x, err := strconv.ParseUint(a, 10, 64); err == nil {
			y, err := strconv.ParseUint(b, 10, 64)
			return err == nil && x == y
		}
	}

	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && x == y
}
