package constants

// Wire type tags written into the "type" field. Sketches reuse the stroke tag
// for compatibility with files produced by earlier versions of the format.
const (
	StrokeType = "stroke"
	SketchType = "stroke"
)

// Canonical field order of the wire records. Positional arrays use the same
// order.
var (
	StrokeFields = []string{"type", "meta", "x", "y", "timestamp", "pressure"}
	SketchFields = []string{"type", "meta", "strokes"}
)

// Indent is the per-level indentation of the canonical pretty-printed form.
const Indent = "  "
