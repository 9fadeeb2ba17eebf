package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/inkdata/inkdata.go/internal/codec"
	"github.com/inkdata/inkdata.go/pkg/constants"
)

// jsonField is one member of a wire record, in canonical position.
// index is the array position for positional records and -1 otherwise.
type jsonField struct {
	raw      []byte
	dataType jsonparser.ValueType
	index    int
}

// readJSON returns the single top-level value of data. It rejects malformed
// input and anything after the value, which jsonparser alone would accept.
func readJSON(data []byte) ([]byte, jsonparser.ValueType, error) {
	if !json.Valid(data) {
		return nil, jsonparser.Unknown, constants.ErrMalformed
	}
	raw, dataType, _, err := jsonparser.Get(data)
	return raw, dataType, err
}

// splitJSON reduces either record shape to the canonical field list.
func splitJSON(entity string, names []string, raw []byte, dataType jsonparser.ValueType) ([]jsonField, error) {
	tracker := newFieldTracker(entity, names)
	fields := make([]jsonField, len(names))

	switch dataType {
	case jsonparser.Array:
		var elems []jsonField
		_, err := jsonparser.ArrayEach(raw, func(value []byte, valueType jsonparser.ValueType, _ int, _ error) {
			elems = append(elems, jsonField{raw: value, dataType: valueType, index: len(elems)})
		})
		if err != nil {
			return nil, &DecodeError{Entity: entity, Index: -1, Err: err}
		}
		if err := tracker.arity(len(elems)); err != nil {
			return nil, err
		}
		copy(fields, elems)
		return fields, nil

	case jsonparser.Object:
		err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, valueType jsonparser.ValueType, _ int) error {
			i, err := tracker.mark(string(key))
			if err != nil {
				return err
			}
			fields[i] = jsonField{raw: value, dataType: valueType, index: -1}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if err := tracker.missing(); err != nil {
			return nil, err
		}
		return fields, nil

	default:
		return nil, &DecodeError{
			Entity: entity,
			Index:  -1,
			Err:    fmt.Errorf("%w, got %s", constants.ErrInvalidShape, dataType),
		}
	}
}

func (s Stroke) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSONString(&buf, s.Type); err != nil {
		return nil, err
	}
	buf.WriteString(`,"meta":`)
	if err := s.Meta.writeJSON(&buf); err != nil {
		return nil, err
	}
	buf.WriteString(`,"x":`)
	writeJSONFloats(&buf, s.X)
	buf.WriteString(`,"y":`)
	writeJSONFloats(&buf, s.Y)
	buf.WriteString(`,"timestamp":`)
	writeJSONUints(&buf, s.Timestamp)
	buf.WriteString(`,"pressure":`)
	writeJSONFloats(&buf, s.Pressure)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the canonical object or the positional array
// [type, meta, x, y, timestamp, pressure].
func (s *Stroke) UnmarshalJSON(data []byte) error {
	raw, dataType, err := readJSON(data)
	if err != nil {
		return &DecodeError{Entity: entityStroke, Index: -1, Err: err}
	}
	return s.decodeJSON(raw, dataType)
}

func (s *Stroke) decodeJSON(raw []byte, dataType jsonparser.ValueType) error {
	const entity = entityStroke

	fields, err := splitJSON(entity, constants.StrokeFields, raw, dataType)
	if err != nil {
		return err
	}

	var decoded Stroke
	if decoded.Type, err = jsonString(entity, "type", fields[0]); err != nil {
		return err
	}
	if decoded.Meta, err = jsonMeta(entity, "meta", fields[1]); err != nil {
		return err
	}
	if decoded.X, err = jsonFloats(entity, "x", fields[2]); err != nil {
		return err
	}
	if decoded.Y, err = jsonFloats(entity, "y", fields[3]); err != nil {
		return err
	}
	if decoded.Timestamp, err = jsonUints(entity, "timestamp", fields[4]); err != nil {
		return err
	}
	if decoded.Pressure, err = jsonFloats(entity, "pressure", fields[5]); err != nil {
		return err
	}

	*s = decoded
	return nil
}

func (s Sketch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSONString(&buf, s.Type); err != nil {
		return nil, err
	}
	buf.WriteString(`,"meta":`)
	if err := s.Meta.writeJSON(&buf); err != nil {
		return nil, err
	}
	buf.WriteString(`,"strokes":[`)
	for i := range s.Strokes {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := s.Strokes[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the canonical object or the positional array
// [type, meta, strokes]. Each stroke may use either shape.
func (s *Sketch) UnmarshalJSON(data []byte) error {
	raw, dataType, err := readJSON(data)
	if err != nil {
		return &DecodeError{Entity: entitySketch, Index: -1, Err: err}
	}
	return s.decodeJSON(raw, dataType)
}

func (s *Sketch) decodeJSON(raw []byte, dataType jsonparser.ValueType) error {
	const entity = entitySketch

	fields, err := splitJSON(entity, constants.SketchFields, raw, dataType)
	if err != nil {
		return err
	}

	var decoded Sketch
	if decoded.Type, err = jsonString(entity, "type", fields[0]); err != nil {
		return err
	}
	if decoded.Meta, err = jsonMeta(entity, "meta", fields[1]); err != nil {
		return err
	}

	strokes := fields[2]
	if strokes.dataType != jsonparser.Array {
		return fieldTypeError(entity, "strokes", strokes, "array")
	}
	decoded.Strokes = []Stroke{}
	var strokeErr error
	_, err = jsonparser.ArrayEach(strokes.raw, func(value []byte, valueType jsonparser.ValueType, _ int, _ error) {
		if strokeErr != nil {
			return
		}
		var stroke Stroke
		if err := stroke.decodeJSON(value, valueType); err != nil {
			strokeErr = fmt.Errorf("%s: strokes[%d]: %w", entity, len(decoded.Strokes), err)
			return
		}
		decoded.Strokes = append(decoded.Strokes, stroke)
	})
	if err != nil {
		return &DecodeError{Entity: entity, Field: "strokes", Index: strokes.index, Err: err}
	}
	if strokeErr != nil {
		return strokeErr
	}

	*s = decoded
	return nil
}

func fieldTypeError(entity, name string, field jsonField, want string) error {
	return &DecodeError{
		Entity: entity,
		Field:  name,
		Index:  field.index,
		Err:    fmt.Errorf("%w: expected %s, got %s", constants.ErrInvalidType, want, field.dataType),
	}
}

func jsonString(entity, name string, field jsonField) (string, error) {
	if field.dataType != jsonparser.String {
		return "", fieldTypeError(entity, name, field, "string")
	}
	s, err := jsonparser.ParseString(field.raw)
	if err != nil {
		return "", &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	return s, nil
}

func jsonMeta(entity, name string, field jsonField) (Meta, error) {
	if field.dataType != jsonparser.Object {
		return nil, fieldTypeError(entity, name, field, "object")
	}
	meta, err := parseObject(field.raw)
	if err != nil {
		return nil, &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	return meta, nil
}

func jsonFloats(entity, name string, field jsonField) ([]float64, error) {
	if field.dataType != jsonparser.Array {
		return nil, fieldTypeError(entity, name, field, "array of numbers")
	}
	values := []float64{}
	var elemErr error
	_, err := jsonparser.ArrayEach(field.raw, func(value []byte, valueType jsonparser.ValueType, _ int, _ error) {
		if elemErr != nil {
			return
		}
		if valueType != jsonparser.Number {
			elemErr = fmt.Errorf("%w: element %d is %s, expected number", constants.ErrInvalidType, len(values), valueType)
			return
		}
		f, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			elemErr = fmt.Errorf("%w: element %d: %v", constants.ErrInvalidType, len(values), err)
			return
		}
		values = append(values, f)
	})
	if err == nil {
		err = elemErr
	}
	if err != nil {
		return nil, &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	return values, nil
}

func jsonUints(entity, name string, field jsonField) ([]uint64, error) {
	if field.dataType != jsonparser.Array {
		return nil, fieldTypeError(entity, name, field, "array of unsigned integers")
	}
	values := []uint64{}
	var elemErr error
	_, err := jsonparser.ArrayEach(field.raw, func(value []byte, valueType jsonparser.ValueType, _ int, _ error) {
		if elemErr != nil {
			return
		}
		if valueType != jsonparser.Number {
			elemErr = fmt.Errorf("%w: element %d is %s, expected unsigned integer", constants.ErrInvalidType, len(values), valueType)
			return
		}
		u, err := strconv.ParseUint(string(value), 10, 64)
		if err != nil {
			elemErr = fmt.Errorf("%w: element %d: %s is not an unsigned 64-bit integer", constants.ErrInvalidType, len(values), value)
			return
		}
		values = append(values, u)
	})
	if err == nil {
		err = elemErr
	}
	if err != nil {
		return nil, &DecodeError{Entity: entity, Field: name, Index: field.index, Err: err}
	}
	return values, nil
}

// writeJSONFloats writes NaN and infinities as null.
func writeJSONFloats(buf *bytes.Buffer, values []float64) {
	buf.WriteByte('[')
	var scratch [32]byte
	for i, f := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf.WriteString("null")
			continue
		}
		buf.Write(appendFloat(scratch[:0], f))
	}
	buf.WriteByte(']')
}

func writeJSONUints(buf *bytes.Buffer, values []uint64) {
	buf.WriteByte('[')
	var scratch [20]byte
	for i, u := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(strconv.AppendUint(scratch[:0], u, 10))
	}
	buf.WriteByte(']')
}

// JSONMarshaler writes the canonical pretty-printed form.
type JSONMarshaler struct {
}

func (j JSONMarshaler) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", constants.Indent)
}

func (j JSONMarshaler) NewEncoder(w io.Writer) codec.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", constants.Indent)
	return enc
}

type JSONUnmarshaler struct {
}

func (j JSONUnmarshaler) Unmarshal(data []byte, dst any) error {
	return json.Unmarshal(data, dst)
}

func (j JSONUnmarshaler) NewDecoder(r io.Reader) codec.Decoder {
	return json.NewDecoder(r)
}
