package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Constructors(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.True(t, Value{}.IsNull())

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	f, ok := Float(7.1).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 7.1, f)

	i, ok := Int(-3).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(-3), i)

	literal, ok := Uint(math.MaxUint64).Literal()
	assert.True(t, ok)
	assert.Equal(t, "18446744073709551615", literal)

	s, ok := String("ink").AsString()
	assert.True(t, ok)
	assert.Equal(t, "ink", s)

	arr, ok := Array().AsArray()
	assert.True(t, ok)
	assert.NotNil(t, arr)

	obj, ok := Object(nil).AsObject()
	assert.True(t, ok)
	assert.NotNil(t, obj)

	_, ok = String("1").AsFloat()
	assert.False(t, ok)
}

func TestValue_FloatNonFinite(t *testing.T) {
	assert.True(t, Float(math.NaN()).IsNull())
	assert.True(t, Float(math.Inf(1)).IsNull())
	assert.True(t, Float(math.Inf(-1)).IsNull())
}

func TestNumber(t *testing.T) {
	for _, literal := range []string{"0", "-1", "1.50", "1e3", "2.5E-7"} {
		t.Run(literal, func(t *testing.T) {
			v, err := Number(literal)
			require.NoError(t, err)
			got, _ := v.Literal()
			assert.Equal(t, literal, got)
		})
	}

	for _, literal := range []string{"", "abc", "01", "1.", "[1]", "-", "true"} {
		t.Run("invalid "+literal, func(t *testing.T) {
			_, err := Number(literal)
			assert.Error(t, err)
		})
	}
}

func TestValue_Equal(t *testing.T) {
	mustNumber := func(literal string) Value {
		v, err := Number(literal)
		require.NoError(t, err)
		return v
	}

	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null", Null(), Null(), true},
		{"bool", Bool(true), Bool(true), true},
		{"bool differs", Bool(true), Bool(false), false},
		{"integers", Int(1), Uint(1), true},
		{"floats with different text", mustNumber("1.50"), mustNumber("1.5"), true},
		{"exponent", mustNumber("1e2"), mustNumber("100.0"), true},
		{"integer and float", mustNumber("1"), mustNumber("1.0"), false},
		{"large unsigned", Uint(math.MaxUint64), mustNumber("18446744073709551615"), true},
		{"strings", String("a"), String("a"), true},
		{"kinds differ", String("1"), Int(1), false},
		{"arrays", Array(Int(1), String("x")), Array(Int(1), String("x")), true},
		{"array order", Array(Int(1), Int(2)), Array(Int(2), Int(1)), false},
		{"array length", Array(Int(1)), Array(Int(1), Int(1)), false},
		{"objects", Object(map[string]Value{"a": Int(1)}), Object(map[string]Value{"a": Int(1)}), true},
		{"objects differ", Object(map[string]Value{"a": Int(1)}), Object(map[string]Value{"b": Int(1)}), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
			assert.Equal(t, tc.want, tc.b.Equal(tc.a))
		})
	}
}

func TestValue_JSON(t *testing.T) {
	input := `{"a":[1,2.50,-3e2],"b":{"nested":true},"c":null,"d":"q\"uoteé"}`

	var v Value
	require.NoError(t, json.Unmarshal([]byte(input), &v))
	require.Equal(t, KindObject, v.Kind())

	obj, _ := v.AsObject()
	s, _ := obj["d"].AsString()
	assert.Equal(t, "q\"uoteé", s)
	assert.True(t, obj["c"].IsNull())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2.50,-3e2],"b":{"nested":true},"c":null,"d":"q\"uoteé"}`, string(data))
	assert.Equal(t, string(data), v.String())
}

func TestValueOf(t *testing.T) {
	type point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	v, err := ValueOf(point{X: 1, Y: 2.5})
	require.NoError(t, err)
	assert.Equal(t, `{"x":1,"y":2.5}`, v.String())

	var decoded point
	require.NoError(t, v.Decode(&decoded))
	assert.Equal(t, point{X: 1, Y: 2.5}, decoded)

	same, err := ValueOf(v)
	require.NoError(t, err)
	assert.True(t, same.Equal(v))

	_, err = ValueOf(make(chan int))
	assert.Error(t, err)
}

func TestMeta(t *testing.T) {
	meta := Meta{}
	require.NoError(t, meta.Set("someVal", 7.1))
	require.NoError(t, meta.Set("someArr", []int{1, 2, 3, 4}))
	require.NoError(t, meta.Set("someVec", []float64{1, 2, 3, 4, 5, 32}))

	var someVal float64
	require.NoError(t, meta["someVal"].Decode(&someVal))
	assert.Equal(t, 7.1, someVal)

	var someArr []int32
	require.NoError(t, meta["someArr"].Decode(&someArr))
	assert.Equal(t, []int32{1, 2, 3, 4}, someArr)

	var someVec []float64
	require.NoError(t, meta["someVec"].Decode(&someVec))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 32}, someVec)

	data, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Equal(t, `{"someArr":[1,2,3,4],"someVal":7.1,"someVec":[1,2,3,4,5,32]}`, string(data))

	clone := meta.Clone()
	assert.True(t, clone.Equal(meta))
	arr, _ := clone["someArr"].AsArray()
	arr[0] = String("changed")
	assert.False(t, clone.Equal(meta))

	var nilMeta Meta
	assert.True(t, nilMeta.Equal(Meta{}))
	data, err = json.Marshal(nilMeta)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	var decoded Meta
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &decoded))
}
