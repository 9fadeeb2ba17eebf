package models

import (
	"encoding/json"
	"fmt"
)

// BoundingBox is an axis-aligned rectangle. It is a plain value; every
// operation returns a new box.
type BoundingBox struct {
	XMin   float64 `json:"x_min"`
	YMin   float64 `json:"y_min"`
	XMax   float64 `json:"x_max"`
	YMax   float64 `json:"y_max"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBoundingBox builds a box from its bounds.
// It panics when a minimum is greater than its maximum: inverted bounds are a
// programming error, callers validate their input before constructing.
func NewBoundingBox(xMin, yMin, xMax, yMax float64) BoundingBox {
	if xMin > xMax {
		panic(fmt.Errorf("x_min value (%v) should be less than x_max value (%v)", xMin, xMax))
	}
	if yMin > yMax {
		panic(fmt.Errorf("y_min value (%v) should be less than y_max value (%v)", yMin, yMax))
	}

	return BoundingBox{
		XMin:   xMin,
		YMin:   yMin,
		XMax:   xMax,
		YMax:   yMax,
		Width:  xMax - xMin,
		Height: yMax - yMin,
	}
}

// Merge returns the smallest box enclosing both b and other.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	return NewBoundingBox(
		minFloat(b.XMin, other.XMin),
		minFloat(b.YMin, other.YMin),
		maxFloat(b.XMax, other.XMax),
		maxFloat(b.YMax, other.YMax),
	)
}

// Contains reports whether (x, y) lies inside b. All four edges are inclusive.
func (b BoundingBox) Contains(x, y float64) bool {
	return b.XMin <= x && x <= b.XMax && b.YMin <= y && y <= b.YMax
}

// Intersects reports whether a corner of either box lies inside the other.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.Contains(other.XMin, other.YMax) ||
		b.Contains(other.XMin, other.YMin) ||
		b.Contains(other.XMax, other.YMax) ||
		b.Contains(other.XMax, other.YMin) ||
		other.Contains(b.XMin, b.YMax) ||
		other.Contains(b.XMin, b.YMin) ||
		other.Contains(b.XMax, b.YMax) ||
		other.Contains(b.XMax, b.YMin)
}

// GetIntersection returns the overlapping rectangle of b and other.
// The second result is false when the boxes do not intersect.
func (b BoundingBox) GetIntersection(other BoundingBox) (BoundingBox, bool) {
	if !b.Intersects(other) {
		return BoundingBox{}, false
	}

	return NewBoundingBox(
		maxFloat(b.XMin, other.XMin),
		maxFloat(b.YMin, other.YMin),
		minFloat(b.XMax, other.XMax),
		minFloat(b.YMax, other.YMax),
	), true
}

func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}

func (b BoundingBox) String() string {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Sprintf("{x_min:%v y_min:%v x_max:%v y_max:%v}", b.XMin, b.YMin, b.XMax, b.YMax)
	}
	return string(data)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
