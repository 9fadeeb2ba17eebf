package models

import (
	"errors"
	"math"
	"testing"

	"github.com/inkdata/inkdata.go/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStroke_Extrema(t *testing.T) {
	stroke := NewStroke(
		[]float64{10, 20, 30, 40, 50},
		[]float64{1, 2, 3, 4, 5},
		[]uint64{1, 2, 3, 4, 5},
		[]float64{1, 2, 3, 4, 5},
	)

	assert.Equal(t, constants.StrokeType, stroke.Type)
	assert.NotNil(t, stroke.Meta)
	assert.Equal(t, 5, stroke.Len())
	assert.Equal(t, 10.0, stroke.XMin())
	assert.Equal(t, 50.0, stroke.XMax())
	assert.Equal(t, 1.0, stroke.YMin())
	assert.Equal(t, 5.0, stroke.YMax())
	assert.Equal(t, uint64(1), stroke.TimestampMin())
	assert.Equal(t, uint64(5), stroke.TimestampMax())
	assert.Equal(t, 1.0, stroke.PressureMin())
	assert.Equal(t, 5.0, stroke.PressureMax())
}

func TestStroke_ExtremaEmpty(t *testing.T) {
	stroke := NewStroke(nil, nil, nil, nil)

	assert.Zero(t, stroke.Len())
	assert.Equal(t, math.MaxFloat64, stroke.XMin())
	assert.Equal(t, -math.MaxFloat64, stroke.XMax())
	assert.Equal(t, math.MaxFloat64, stroke.YMin())
	assert.Equal(t, -math.MaxFloat64, stroke.YMax())
	assert.Equal(t, uint64(math.MaxUint64), stroke.TimestampMin())
	assert.Equal(t, uint64(0), stroke.TimestampMax())
	assert.Equal(t, math.MaxFloat64, stroke.PressureMin())
	assert.Equal(t, -math.MaxFloat64, stroke.PressureMax())

	_, ok := stroke.BoundingBox()
	assert.False(t, ok)
}

func TestStroke_ExtremaIgnoreNaN(t *testing.T) {
	stroke := NewStroke([]float64{math.NaN(), 2, 1}, []float64{3, math.NaN(), 4}, nil, nil)

	assert.Equal(t, 1.0, stroke.XMin())
	assert.Equal(t, 2.0, stroke.XMax())
	assert.Equal(t, 3.0, stroke.YMin())
	assert.Equal(t, 4.0, stroke.YMax())
}

func TestStroke_BoundingBox(t *testing.T) {
	stroke := NewStroke([]float64{0, 3, 1}, []float64{-1, 2, 0}, nil, nil)

	box, ok := stroke.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, NewBoundingBox(0, -1, 3, 2), box)
}

func TestStroke_Validate(t *testing.T) {
	valid := NewStroke([]float64{1, 2}, []float64{1, 2}, []uint64{1, 2}, []float64{0.5, 0.5})
	require.NoError(t, valid.Validate())

	mismatched := NewStroke([]float64{1, 2, 3, 4, 5, 32}, []float64{1, 2, 3, 4, 5}, []uint64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	err := mismatched.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrChannelLength))
	assert.Contains(t, err.Error(), "x=6 y=5 timestamp=4 pressure=4")

	// Operations stay usable on mismatched channels.
	assert.Equal(t, 6, mismatched.Len())
	assert.Equal(t, 32.0, mismatched.XMax())
	assert.Equal(t, 5.0, mismatched.YMax())
}

func TestStroke_Offset(t *testing.T) {
	stroke := NewStroke([]float64{0, 0, 1, 1}, []float64{0, 1, 1, 0}, nil, nil)
	stroke.Offset(4.2, -1)

	assert.Equal(t, []float64{4.2, 4.2, 5.2, 5.2}, stroke.X)
	assert.Equal(t, []float64{-1, 0, 0, -1}, stroke.Y)
	assert.Equal(t, 4.2, stroke.XMin())
	assert.Equal(t, 5.2, stroke.XMax())
	assert.Equal(t, -1.0, stroke.YMin())
	assert.Equal(t, 0.0, stroke.YMax())

	stroke.Offset(0, 0)
	assert.Equal(t, []float64{4.2, 4.2, 5.2, 5.2}, stroke.X)
}

func TestStroke_Scale(t *testing.T) {
	stroke := NewStroke([]float64{0, 0, 1, 1}, []float64{0, 1, 1, 0}, nil, nil)
	stroke.Scale(4.2, -1)

	assert.Equal(t, []float64{0, 0, 4.2, 4.2}, stroke.X)
	assert.Equal(t, []float64{0, -1, -1, 0}, stroke.Y)
	assert.Equal(t, 0.0, stroke.XMin())
	assert.Equal(t, 4.2, stroke.XMax())
	assert.Equal(t, -1.0, stroke.YMin())
	assert.Equal(t, 0.0, stroke.YMax())

	stroke.Scale(1, 1)
	assert.Equal(t, []float64{0, 0, 4.2, 4.2}, stroke.X)
}

func TestStroke_RemoveDuplicateDots(t *testing.T) {
	cases := []struct {
		name      string
		x, y      []float64
		timestamp []uint64
		wantX     []float64
		wantY     []float64
		wantT     []uint64
	}{
		{
			name:      "no duplicates",
			x:         []float64{1, 2, 3, 4},
			y:         []float64{1, 2, 3, 4},
			timestamp: []uint64{1, 2, 3, 4},
			wantX:     []float64{1, 2, 3, 4},
			wantY:     []float64{1, 2, 3, 4},
			wantT:     []uint64{1, 2, 3, 4},
		},
		{
			name:      "one duplicate",
			x:         []float64{2, 3, 3, 5},
			y:         []float64{5, 3, 3, 1},
			timestamp: []uint64{1, 2, 3, 4},
			wantX:     []float64{2, 3, 5},
			wantY:     []float64{5, 3, 1},
			wantT:     []uint64{1, 2, 4},
		},
		{
			name:      "order is kept",
			x:         []float64{1, 1, 2, 3},
			y:         []float64{0, 0, 0, 0},
			timestamp: []uint64{10, 20, 30, 40},
			wantX:     []float64{1, 2, 3},
			wantY:     []float64{0, 0, 0},
			wantT:     []uint64{10, 30, 40},
		},
		{
			name:      "run keeps first sample",
			x:         []float64{3, 3, 3},
			y:         []float64{3, 3, 3},
			timestamp: []uint64{1, 2, 3},
			wantX:     []float64{3},
			wantY:     []float64{3},
			wantT:     []uint64{1},
		},
		{
			name:      "non adjacent repeat is kept",
			x:         []float64{1, 2, 1},
			y:         []float64{1, 2, 1},
			timestamp: []uint64{1, 2, 3},
			wantX:     []float64{1, 2, 1},
			wantY:     []float64{1, 2, 1},
			wantT:     []uint64{1, 2, 3},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pressure := make([]float64, len(tc.x))
			for i := range pressure {
				pressure[i] = float64(tc.timestamp[i]) / 100
			}
			stroke := NewStroke(tc.x, tc.y, tc.timestamp, pressure)
			stroke.RemoveDuplicateDots()

			assert.Equal(t, tc.wantX, stroke.X)
			assert.Equal(t, tc.wantY, stroke.Y)
			assert.Equal(t, tc.wantT, stroke.Timestamp)
			require.Len(t, stroke.Pressure, len(tc.wantT))
			for i, ts := range tc.wantT {
				assert.Equal(t, float64(ts)/100, stroke.Pressure[i])
			}
			assert.NoError(t, stroke.Validate())
		})
	}
}

func TestStroke_RemoveDuplicateDotsShortChannels(t *testing.T) {
	// Timestamp and pressure are missing; only positions are compacted.
	stroke := NewStroke([]float64{1, 1, 2}, []float64{1, 1, 2}, nil, nil)
	stroke.RemoveDuplicateDots()

	assert.Equal(t, []float64{1, 2}, stroke.X)
	assert.Equal(t, []float64{1, 2}, stroke.Y)
	assert.Empty(t, stroke.Timestamp)
	assert.Empty(t, stroke.Pressure)
}

func TestStroke_Equal(t *testing.T) {
	newStroke := func() Stroke {
		return NewStroke(
			[]float64{1, 2, 3, 4, 5, 32},
			[]float64{1, 2, 3, 4, 5},
			[]uint64{1, 2, 3, 4},
			[]float64{1, 2, 3, 4},
		)
	}
	stroke0 := newStroke()
	stroke1 := newStroke()
	stroke2 := NewStroke([]float64{2}, []float64{2}, []uint64{2}, []float64{2})

	assert.True(t, stroke0.Equal(&stroke1))
	assert.True(t, stroke1.Equal(&stroke0))
	assert.False(t, stroke0.Equal(&stroke2))
	assert.False(t, stroke2.Equal(&stroke0))
	assert.False(t, stroke1.Equal(&stroke2))
	assert.False(t, stroke2.Equal(&stroke1))

	stroke1.Meta["label"] = String("a")
	assert.False(t, stroke0.Equal(&stroke1))

	stroke1 = newStroke()
	stroke1.Type = "line"
	assert.False(t, stroke0.Equal(&stroke1))
}

func TestStroke_Clone(t *testing.T) {
	stroke := NewStroke([]float64{1, 2}, []float64{3, 4}, []uint64{5, 6}, []float64{0.1, 0.2})
	stroke.Meta["tags"] = Array(String("a"))

	clone := stroke.Clone()
	require.True(t, stroke.Equal(&clone))

	clone.X[0] = 100
	clone.Meta["tags"] = Null()
	assert.Equal(t, 1.0, stroke.X[0])
	assert.Equal(t, KindArray, stroke.Meta["tags"].Kind())
}

func TestStrokeBuilder(t *testing.T) {
	builder := NewStrokeBuilder()
	builder.AddPoint(1, 2, 3, 4)
	builder.AddPoint(2, 3, 4, 5)
	assert.Equal(t, 2, builder.Len())

	stroke := builder.Build()
	assert.Equal(t, 2, stroke.Len())
	assert.Equal(t, []float64{1, 2}, stroke.X)
	assert.Equal(t, []float64{2, 3}, stroke.Y)
	assert.Equal(t, []uint64{3, 4}, stroke.Timestamp)
	assert.Equal(t, []float64{4, 5}, stroke.Pressure)
	assert.Equal(t, constants.StrokeType, stroke.Type)
	assert.NoError(t, stroke.Validate())

	// The builder starts over after Build.
	assert.Zero(t, builder.Len())
	builder.AddPoint(9, 9, 9, 9)
	next := builder.Build()
	assert.Equal(t, []float64{9}, next.X)
	assert.Equal(t, []float64{1, 2}, stroke.X)

	empty := NewStrokeBuilder().Build()
	assert.NotNil(t, empty.X)
	assert.Zero(t, empty.Len())
}

func TestStroke_OffsetScaleReversible(t *testing.T) {
	stroke := NewStroke([]float64{0, 0, 1, 1}, []float64{0, 1, 1, 0}, nil, nil)
	stroke.Offset(4.2, -1)
	stroke.Offset(-4.2, 1)
	assert.Equal(t, []float64{0, 0, 1, 1}, stroke.X)
	assert.Equal(t, []float64{0, 1, 1, 0}, stroke.Y)

	stroke = NewStroke([]float64{0.1, 12.5, -3.75}, []float64{7.3, -0.2, 1e-3}, nil, nil)
	want := stroke.Clone()
	stroke.Scale(3.3, 0.7)
	stroke.Scale(1/3.3, 1/0.7)
	assert.InDeltaSlice(t, want.X, stroke.X, 1e-12)
	assert.InDeltaSlice(t, want.Y, stroke.Y, 1e-12)
}
