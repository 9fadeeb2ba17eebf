package models

// StrokeBuilder accumulates samples one at a time, e.g. while a pen is down.
type StrokeBuilder struct {
	x         []float64
	y         []float64
	timestamp []uint64
	pressure  []float64
}

func NewStrokeBuilder() *StrokeBuilder {
	return &StrokeBuilder{}
}

func (b *StrokeBuilder) AddPoint(x, y float64, timestamp uint64, pressure float64) {
	b.x = append(b.x, x)
	b.y = append(b.y, y)
	b.timestamp = append(b.timestamp, timestamp)
	b.pressure = append(b.pressure, pressure)
}

func (b *StrokeBuilder) Len() int {
	return len(b.x)
}

// Build hands the accumulated samples to a new stroke and resets the builder.
// Points added afterwards start a new stroke.
func (b *StrokeBuilder) Build() Stroke {
	stroke := NewStroke(orEmpty(b.x), orEmpty(b.y), orEmpty(b.timestamp), orEmpty(b.pressure))
	*b = StrokeBuilder{}
	return stroke
}

func orEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
