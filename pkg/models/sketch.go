package models

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/inkdata/inkdata.go/pkg/constants"
)

// Sketch is an ordered collection of strokes. It owns its strokes: strokes
// passed in are no longer used by the caller.
type Sketch struct {
	Type    string
	Meta    Meta
	Strokes []Stroke
}

func NewSketch(strokes []Stroke) *Sketch {
	return &Sketch{
		Type:    constants.SketchType,
		Meta:    Meta{},
		Strokes: strokes,
	}
}

func (s *Sketch) AddStroke(stroke Stroke) {
	s.Strokes = append(s.Strokes, stroke)
}

func (s *Sketch) Len() int {
	return len(s.Strokes)
}

// Extrema over all strokes. An empty sketch yields the same seeds as an empty
// stroke.

func (s *Sketch) XMin() float64 {
	m := math.MaxFloat64
	for i := range s.Strokes {
		if v := s.Strokes[i].XMin(); v < m {
			m = v
		}
	}
	return m
}

func (s *Sketch) XMax() float64 {
	m := -math.MaxFloat64
	for i := range s.Strokes {
		if v := s.Strokes[i].XMax(); v > m {
			m = v
		}
	}
	return m
}

func (s *Sketch) YMin() float64 {
	m := math.MaxFloat64
	for i := range s.Strokes {
		if v := s.Strokes[i].YMin(); v < m {
			m = v
		}
	}
	return m
}

func (s *Sketch) YMax() float64 {
	m := -math.MaxFloat64
	for i := range s.Strokes {
		if v := s.Strokes[i].YMax(); v > m {
			m = v
		}
	}
	return m
}

func (s *Sketch) TimestampMin() uint64 {
	m := uint64(math.MaxUint64)
	for i := range s.Strokes {
		if v := s.Strokes[i].TimestampMin(); v < m {
			m = v
		}
	}
	return m
}

func (s *Sketch) TimestampMax() uint64 {
	m := uint64(0)
	for i := range s.Strokes {
		if v := s.Strokes[i].TimestampMax(); v > m {
			m = v
		}
	}
	return m
}

func (s *Sketch) PressureMin() float64 {
	m := math.MaxFloat64
	for i := range s.Strokes {
		if v := s.Strokes[i].PressureMin(); v < m {
			m = v
		}
	}
	return m
}

func (s *Sketch) PressureMax() float64 {
	m := -math.MaxFloat64
	for i := range s.Strokes {
		if v := s.Strokes[i].PressureMax(); v > m {
			m = v
		}
	}
	return m
}

// BoundingBox merges the boxes of all strokes that have samples.
func (s *Sketch) BoundingBox() (BoundingBox, bool) {
	var (
		box   BoundingBox
		found bool
	)
	for i := range s.Strokes {
		strokeBox, ok := s.Strokes[i].BoundingBox()
		if !ok {
			continue
		}
		if !found {
			box, found = strokeBox, true
			continue
		}
		box = box.Merge(strokeBox)
	}
	return box, found
}

func (s *Sketch) Offset(xOffset, yOffset float64) {
	for i := range s.Strokes {
		s.Strokes[i].Offset(xOffset, yOffset)
	}
}

func (s *Sketch) Scale(xFactor, yFactor float64) {
	for i := range s.Strokes {
		s.Strokes[i].Scale(xFactor, yFactor)
	}
}

// Normalize moves the sketch to the origin and scales it so that its extent
// becomes newSize. With keepAspectRatio the larger axis decides a single
// factor for both axes; otherwise each axis is scaled on its own.
//
// A sketch with zero extent on an axis divides by zero there; its
// coordinates become NaN.
func (s *Sketch) Normalize(newSize float64, keepAspectRatio bool) {
	s.Offset(-s.XMin(), -s.YMin())

	xMax, yMax := s.XMax(), s.YMax()
	xFactor := newSize / xMax
	yFactor := newSize / yMax

	switch {
	case keepAspectRatio && xMax >= yMax:
		s.Scale(xFactor, xFactor)
	case keepAspectRatio:
		s.Scale(yFactor, yFactor)
	default:
		s.Scale(xFactor, yFactor)
	}
}

func (s *Sketch) RemoveDuplicateDots() {
	for i := range s.Strokes {
		s.Strokes[i].RemoveDuplicateDots()
	}
}

// RemoveSingleDotStrokes drops strokes with at most one sample, keeping the
// order of the others.
func (s *Sketch) RemoveSingleDotStrokes() {
	s.Strokes = slices.DeleteFunc(s.Strokes, func(stroke Stroke) bool {
		return stroke.Len() <= 1
	})
}

// Equal compares type, metadata and the strokes in order.
func (s *Sketch) Equal(other *Sketch) bool {
	if s.Type != other.Type || !s.Meta.Equal(other.Meta) || len(s.Strokes) != len(other.Strokes) {
		return false
	}
	for i := range s.Strokes {
		if !s.Strokes[i].Equal(&other.Strokes[i]) {
			return false
		}
	}
	return true
}

func (s *Sketch) Clone() *Sketch {
	var strokes []Stroke
	if s.Strokes != nil {
		strokes = make([]Stroke, len(s.Strokes))
		for i := range s.Strokes {
			strokes[i] = s.Strokes[i].Clone()
		}
	}
	return &Sketch{Type: s.Type, Meta: s.Meta.Clone(), Strokes: strokes}
}

func (s Sketch) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("sketch(len=%d)", len(s.Strokes))
	}
	return string(data)
}
