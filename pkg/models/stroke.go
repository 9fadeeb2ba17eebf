package models

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/inkdata/inkdata.go/pkg/constants"
)

// Stroke is one continuous pen or touch input. The four channels are parallel:
// sample i is (X[i], Y[i], Timestamp[i], Pressure[i]).
//
// Channel lengths are not enforced. Len is defined by X alone; use Validate
// when mismatched channels must be rejected.
type Stroke struct {
	Type      string
	Meta      Meta
	X         []float64
	Y         []float64
	Timestamp []uint64
	Pressure  []float64
}

// NewStroke takes ownership of the given channels.
func NewStroke(x, y []float64, timestamp []uint64, pressure []float64) Stroke {
	return Stroke{
		Type:      constants.StrokeType,
		Meta:      Meta{},
		X:         x,
		Y:         y,
		Timestamp: timestamp,
		Pressure:  pressure,
	}
}

func (s *Stroke) Len() int {
	return len(s.X)
}

// Validate reports whether every channel has as many samples as X.
func (s *Stroke) Validate() error {
	n := len(s.X)
	if len(s.Y) != n || len(s.Timestamp) != n || len(s.Pressure) != n {
		return fmt.Errorf("%w: x=%d y=%d timestamp=%d pressure=%d",
			constants.ErrChannelLength, n, len(s.Y), len(s.Timestamp), len(s.Pressure))
	}
	return nil
}

// The extrema below return the fold seed for an empty channel:
// math.MaxFloat64 for minima and -math.MaxFloat64 for maxima
// (math.MaxUint64 and 0 for timestamps). NaN samples are ignored.

func (s *Stroke) XMin() float64 {
	return foldMin(s.X)
}

func (s *Stroke) XMax() float64 {
	return foldMax(s.X)
}

func (s *Stroke) YMin() float64 {
	return foldMin(s.Y)
}

func (s *Stroke) YMax() float64 {
	return foldMax(s.Y)
}

func (s *Stroke) TimestampMin() uint64 {
	m := uint64(math.MaxUint64)
	for _, t := range s.Timestamp {
		if t < m {
			m = t
		}
	}
	return m
}

func (s *Stroke) TimestampMax() uint64 {
	m := uint64(0)
	for _, t := range s.Timestamp {
		if t > m {
			m = t
		}
	}
	return m
}

func (s *Stroke) PressureMin() float64 {
	return foldMin(s.Pressure)
}

func (s *Stroke) PressureMax() float64 {
	return foldMax(s.Pressure)
}

// BoundingBox returns the extent of the stroke's coordinates. It returns false
// when the stroke has no usable samples.
func (s *Stroke) BoundingBox() (BoundingBox, bool) {
	xMin, xMax := s.XMin(), s.XMax()
	yMin, yMax := s.YMin(), s.YMax()
	if len(s.X) == 0 || len(s.Y) == 0 || xMin > xMax || yMin > yMax {
		return BoundingBox{}, false
	}
	return NewBoundingBox(xMin, yMin, xMax, yMax), true
}

// Offset translates the stroke in place.
func (s *Stroke) Offset(xOffset, yOffset float64) {
	if xOffset != 0 {
		for i := range s.X {
			s.X[i] += xOffset
		}
	}

	if yOffset != 0 {
		for i := range s.Y {
			s.Y[i] += yOffset
		}
	}
}

// Scale multiplies the coordinates in place.
func (s *Stroke) Scale(xFactor, yFactor float64) {
	if xFactor != 1 {
		for i := range s.X {
			s.X[i] *= xFactor
		}
	}

	if yFactor != 1 {
		for i := range s.Y {
			s.Y[i] *= yFactor
		}
	}
}

// RemoveDuplicateDots drops every sample whose position equals the
// position of the sample right before it, so a run of identical positions
// keeps only its first sample. The dropped index is removed from all four
// channels and the remaining samples keep their order.
func (s *Stroke) RemoveDuplicateDots() {
	n := min(len(s.X), len(s.Y))
	if n < 2 {
		return
	}

	drop := make([]bool, n)
	dropped := false
	for i := 1; i < n; i++ {
		if s.X[i] == s.X[i-1] && s.Y[i] == s.Y[i-1] {
			drop[i] = true
			dropped = true
		}
	}
	if !dropped {
		return
	}

	s.X = compact(s.X, drop)
	s.Y = compact(s.Y, drop)
	s.Timestamp = compact(s.Timestamp, drop)
	s.Pressure = compact(s.Pressure, drop)
}

// Equal compares all six fields.
func (s *Stroke) Equal(other *Stroke) bool {
	return s.Type == other.Type &&
		s.Meta.Equal(other.Meta) &&
		slices.Equal(s.X, other.X) &&
		slices.Equal(s.Y, other.Y) &&
		slices.Equal(s.Timestamp, other.Timestamp) &&
		slices.Equal(s.Pressure, other.Pressure)
}

// Clone returns a deep copy, metadata included.
func (s *Stroke) Clone() Stroke {
	return Stroke{
		Type:      s.Type,
		Meta:      s.Meta.Clone(),
		X:         slices.Clone(s.X),
		Y:         slices.Clone(s.Y),
		Timestamp: slices.Clone(s.Timestamp),
		Pressure:  slices.Clone(s.Pressure),
	}
}

// String returns the compact canonical JSON form.
func (s Stroke) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("stroke(len=%d)", len(s.X))
	}
	return string(data)
}

func foldMin(values []float64) float64 {
	m := math.MaxFloat64
	for _, v := range values {
		if v < m {
			m = v
		}
	}
	return m
}

func foldMax(values []float64) float64 {
	m := -math.MaxFloat64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// compact removes the indices flagged in drop, in place. Indices past the end
// of drop are kept.
func compact[T any](values []T, drop []bool) []T {
	w := 0
	for i, v := range values {
		if i < len(drop) && drop[i] {
			continue
		}
		values[w] = v
		w++
	}
	clear(values[w:])
	return values[:w]
}
