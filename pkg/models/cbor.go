package models

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"sort"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/inkdata/inkdata.go/internal/codec"
	"github.com/inkdata/inkdata.go/pkg/constants"
)

// CBOR major types and simple values used to tell items apart by their
// initial byte.
const (
	cborMajorTextString = 3
	cborMajorArray      = 4
	cborMajorMap        = 5

	cborNull      = 0xf6
	cborUndefined = 0xf7
)

var (
	cborEncMode = getCborEncoder()
	cborDecMode = getCborDecoder()
)

type CborMarshaler struct {
}

func (c CborMarshaler) Marshal(v interface{}) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

func (c CborMarshaler) NewEncoder(w io.Writer) codec.Encoder {
	return cborEncMode.NewEncoder(w)
}

type CborUnmarshaler struct {
}

func (c CborUnmarshaler) Unmarshal(data []byte, dst interface{}) error {
	return cborDecMode.Unmarshal(data, dst)
}

func (c CborUnmarshaler) NewDecoder(r io.Reader) codec.Decoder {
	return cborDecMode.NewDecoder(r)
}

func getCborEncoder() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:          cbor.SortCoreDeterministic,
		ShortestFloat: cbor.ShortestFloat16,
	}.EncMode()
	if err != nil {
		panic(err)
	}

	return em
}

func getCborDecoder() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return dm
}

type strokeWire struct {
	Type      string    `cbor:"type"`
	Meta      Meta      `cbor:"meta"`
	X         []float64 `cbor:"x"`
	Y         []float64 `cbor:"y"`
	Timestamp []uint64  `cbor:"timestamp"`
	Pressure  []float64 `cbor:"pressure"`
}

type sketchWire struct {
	Type    string   `cbor:"type"`
	Meta    Meta     `cbor:"meta"`
	Strokes []Stroke `cbor:"strokes"`
}

func (s Stroke) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(strokeWire{
		Type:      s.Type,
		Meta:      s.Meta,
		X:         orEmpty(s.X),
		Y:         orEmpty(s.Y),
		Timestamp: orEmpty(s.Timestamp),
		Pressure:  orEmpty(s.Pressure),
	})
}

// UnmarshalCBOR accepts a map with the canonical keys or the positional array
// [type, meta, x, y, timestamp, pressure].
func (s *Stroke) UnmarshalCBOR(data []byte) error {
	const entity = entityStroke

	fields, err := splitCBOR(entity, constants.StrokeFields, data)
	if err != nil {
		return err
	}

	var decoded Stroke
	if decoded.Type, err = cborString(entity, "type", fields[0]); err != nil {
		return err
	}
	if decoded.Meta, err = cborMeta(entity, "meta", fields[1]); err != nil {
		return err
	}
	if err = cborArray(entity, "x", fields[2], &decoded.X); err != nil {
		return err
	}
	if err = cborArray(entity, "y", fields[3], &decoded.Y); err != nil {
		return err
	}
	if err = cborArray(entity, "timestamp", fields[4], &decoded.Timestamp); err != nil {
		return err
	}
	if err = cborArray(entity, "pressure", fields[5], &decoded.Pressure); err != nil {
		return err
	}

	*s = decoded
	return nil
}

func (s Sketch) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(sketchWire{
		Type:    s.Type,
		Meta:    s.Meta,
		Strokes: orEmpty(s.Strokes),
	})
}

// UnmarshalCBOR accepts a map with the canonical keys or the positional array
// [type, meta, strokes].
func (s *Sketch) UnmarshalCBOR(data []byte) error {
	const entity = entitySketch

	fields, err := splitCBOR(entity, constants.SketchFields, data)
	if err != nil {
		return err
	}

	var decoded Sketch
	if decoded.Type, err = cborString(entity, "type", fields[0]); err != nil {
		return err
	}
	if decoded.Meta, err = cborMeta(entity, "meta", fields[1]); err != nil {
		return err
	}

	strokes := fields[2]
	if major := cborMajor(strokes.raw); major != cborMajorArray {
		return cborTypeError(entity, "strokes", strokes, "array")
	}
	var elems []cbor.RawMessage
	if err := cborDecMode.Unmarshal(strokes.raw, &elems); err != nil {
		return &DecodeError{Entity: entity, Field: "strokes", Index: strokes.index, Err: err}
	}
	decoded.Strokes = make([]Stroke, len(elems))
	for i, elem := range elems {
		if err := decoded.Strokes[i].UnmarshalCBOR(elem); err != nil {
			return fmt.Errorf("%s: strokes[%d]: %w", entity, i, err)
		}
	}

	*s = decoded
	return nil
}

// MarshalCBOR writes a nil bag as an empty map.
func (m Meta) MarshalCBOR() ([]byte, error) {
	fields := make(map[string]any, len(m))
	for key, value := range m {
		fields[key] = value.toInterface()
	}
	return cborEncMode.Marshal(fields)
}

func (m *Meta) UnmarshalCBOR(data []byte) error {
	if cborMajor(data) != cborMajorMap {
		return fmt.Errorf("%w: metadata must be a map", constants.ErrInvalidType)
	}
	var fields map[string]any
	if err := cborDecMode.Unmarshal(data, &fields); err != nil {
		return err
	}
	meta := make(Meta, len(fields))
	for key, item := range fields {
		value, err := valueFromInterface(item)
		if err != nil {
			return fmt.Errorf("metadata %q: %w", key, err)
		}
		meta[key] = value
	}
	*m = meta
	return nil
}

func (v Value) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(v.toInterface())
}

func (v *Value) UnmarshalCBOR(data []byte) error {
	var item any
	if err := cborDecMode.Unmarshal(data, &item); err != nil {
		return err
	}
	value, err := valueFromInterface(item)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

// toInterface returns the generic Go form of v. Number literals become the
// narrowest of int64, uint64 and float64 that holds them.
func (v Value) toInterface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if isIntegerLiteral(v.num) {
			if i, err := strconv.ParseInt(v.num, 10, 64); err == nil {
				return i
			}
			if u, err := strconv.ParseUint(v.num, 10, 64); err == nil {
				return u
			}
			if b, ok := new(big.Int).SetString(v.num, 10); ok {
				return b
			}
		}
		f, _ := strconv.ParseFloat(v.num, 64)
		return f
	case KindString:
		return v.str
	case KindArray:
		arr := make([]any, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].toInterface()
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.obj))
		for key, value := range v.obj {
			obj[key] = value.toInterface()
		}
		return obj
	default:
		return nil
	}
}

func valueFromInterface(item any) (Value, error) {
	switch x := item.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case uint64:
		return Uint(x), nil
	case int64:
		return Int(x), nil
	case float64:
		return cborFloat(x), nil
	case float32:
		return cborFloat(float64(x)), nil
	case big.Int:
		return Value{kind: KindNumber, num: x.String()}, nil
	case *big.Int:
		return Value{kind: KindNumber, num: x.String()}, nil
	case string:
		return String(x), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			value, err := valueFromInterface(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = value
		}
		return Array(arr...), nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for key, elem := range x {
			value, err := valueFromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			obj[key] = value
		}
		return Object(obj), nil
	default:
		return Value{}, fmt.Errorf("%w: %T has no JSON equivalent", constants.ErrInvalidType, item)
	}
}

// cborFloat keeps a CBOR float in the float class: a whole number is written
// as 2.0, not 2.
func cborFloat(f float64) Value {
	v := Float(f)
	if v.kind == KindNumber && isIntegerLiteral(v.num) {
		v.num += ".0"
	}
	return v
}

type cborField struct {
	raw   cbor.RawMessage
	index int
}

func cborMajor(data []byte) byte {
	if len(data) == 0 {
		return 0xff
	}
	return data[0] >> 5
}

// splitCBOR reduces either record shape to the canonical field list.
func splitCBOR(entity string, names []string, data []byte) ([]cborField, error) {
	tracker := newFieldTracker(entity, names)
	fields := make([]cborField, len(names))

	switch cborMajor(data) {
	case cborMajorArray:
		var elems []cbor.RawMessage
		if err := cborDecMode.Unmarshal(data, &elems); err != nil {
			return nil, &DecodeError{Entity: entity, Index: -1, Err: err}
		}
		if err := tracker.arity(len(elems)); err != nil {
			return nil, err
		}
		for i, elem := range elems {
			fields[i] = cborField{raw: elem, index: i}
		}
		return fields, nil

	case cborMajorMap:
		var members map[string]cbor.RawMessage
		if err := cborDecMode.Unmarshal(data, &members); err != nil {
			var dupErr *cbor.DupMapKeyError
			if errors.As(err, &dupErr) {
				return nil, &DecodeError{Entity: entity, Field: fmt.Sprint(dupErr.Key), Index: -1, Err: constants.ErrDuplicateField}
			}
			return nil, &DecodeError{Entity: entity, Index: -1, Err: err}
		}
		// Check in canonical order first so unknown keys are reported
		// deterministically after every known key has been consumed.
		for _, name := range names {
			if raw, ok := members[name]; ok {
				i, _ := tracker.mark(name)
				fields[i] = cborField{raw: raw, index: -1}
				delete(members, name)
			}
		}
		if len(members) > 0 {
			leftover := make([]string, 0, len(members))
			for key := range members {
				leftover = append(leftover, key)
			}
			sort.Strings(leftover)
			_, err := tracker.mark(leftover[0])
			return nil, err
		}
		if err := tracker.missing(); err != nil {
			return nil, err
		}
		return fields, nil

	default:
		return nil, &DecodeError{Entity: entity, Index: -1, Err: constants.ErrInvalidShape}
	}
}

func cborTypeError(entity, name string, field cborField, want string) error {
	return &DecodeError{
		Entity: entity,
		Field:  name,
		Index:  field.index,
		Err:    fmt.Errorf("%w: expected %s", constants.ErrInvalidType, want),
	}
}

func cborString(entity, name string, field cborField) (string, error) {
	if cborMajor(field.raw) != cborMajorTextString {
		return "", cborTypeError(entity, name, field, "text string")
	}
	var s string
	if err := cborDecMode.Unmarshal(field.raw, &s); err != nil {
		return "", &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	return s, nil
}

func cborMeta(entity, name string, field cborField) (Meta, error) {
	var meta Meta
	if err := meta.UnmarshalCBOR(field.raw); err != nil {
		return nil, &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	return meta, nil
}

func cborArray[T uint64 | float64](entity, name string, field cborField, dst *[]T) error {
	if cborMajor(field.raw) != cborMajorArray {
		return cborTypeError(entity, name, field, "array")
	}
	var elems []cbor.RawMessage
	if err := cborDecMode.Unmarshal(field.raw, &elems); err != nil {
		return &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	values := make([]T, len(elems))
	for i, elem := range elems {
		if len(elem) > 0 && (elem[0] == cborNull || elem[0] == cborUndefined) {
			return &DecodeError{
				Entity: entity,
				Field:  name,
				Index:  field.index,
				Err:    fmt.Errorf("%w: element %d is null", constants.ErrInvalidType, i),
			}
		}
		if err := cborDecMode.Unmarshal(elem, &values[i]); err != nil {
			return &DecodeError{
				Entity: entity,
				Field:  name,
				Index:  field.index,
				Err:    fmt.Errorf("%w: element %d: %v", constants.ErrInvalidType, i, err),
			}
		}
	}
	*dst = values
	return nil
}
