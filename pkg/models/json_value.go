package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/inkdata/inkdata.go/pkg/constants"
)

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	raw, dataType, err := readJSON(data)
	if err != nil {
		return fmt.Errorf("failed to read metadata value: %w", err)
	}
	parsed, err := parseValue(raw, dataType)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON writes the bag as an object with sorted keys. A nil bag is
// written as {}.
func (m Meta) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	raw, dataType, err := readJSON(data)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	if dataType != jsonparser.Object {
		return fmt.Errorf("%w: metadata must be an object, got %s", constants.ErrInvalidType, dataType)
	}
	fields, err := parseObject(raw)
	if err != nil {
		return err
	}
	*m = fields
	return nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.num)
	case KindString:
		return writeJSONString(buf, v.str)
	case KindArray:
		buf.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.arr[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		return Meta(v.obj).writeJSON(buf)
	default:
		return fmt.Errorf("unknown metadata kind %v", v.kind)
	}
	return nil
}

func (m Meta) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, key := range m.sortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := m[key].writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// parseValue converts one jsonparser token into a Value. String tokens come
// without their quotes and still escaped.
func parseValue(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case jsonparser.Number:
		return Value{kind: KindNumber, num: string(raw)}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case jsonparser.Array:
		values := []Value{}
		var parseErr error
		_, err := jsonparser.ArrayEach(raw, func(elem []byte, elemType jsonparser.ValueType, _ int, _ error) {
			if parseErr != nil {
				return
			}
			var value Value
			value, parseErr = parseValue(elem, elemType)
			values = append(values, value)
		})
		if err != nil {
			return Value{}, err
		}
		if parseErr != nil {
			return Value{}, parseErr
		}
		return Array(values...), nil
	case jsonparser.Object:
		fields, err := parseObject(raw)
		if err != nil {
			return Value{}, err
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected JSON token %s", constants.ErrInvalidType, dataType)
	}
}

// parseObject reads every member of a JSON object. A repeated key keeps its
// last value.
func parseObject(raw []byte) (Meta, error) {
	fields := Meta{}
	err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		parsed, err := parseValue(value, dataType)
		if err != nil {
			return err
		}
		fields[string(key)] = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// appendFloat formats f like encoding/json does. f must be finite.
func appendFloat(b []byte, f float64) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}
