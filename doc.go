// The [inkdata] package reads and writes digital ink: pen or touch strokes and
// the sketches built from them.
//
// # Data Models
//
// The value types live in [github.com/inkdata/inkdata.go/pkg/models]:
// [models.Stroke] holds four parallel channels (x, y, timestamp, pressure),
// [models.Sketch] is an ordered list of strokes and [models.BoundingBox] is
// an axis-aligned rectangle. Strokes and sketches carry a free-form metadata
// bag of JSON values. Transforms such as Offset, Scale and Normalize mutate in
// place; use Clone first to keep the original.
//
// # Wire Format
//
// Strokes encode as a JSON object with the keys type, meta, x, y, timestamp
// and pressure in that order. Sketches encode as type, meta and strokes.
// Decoding also accepts the positional array form, e.g.
// ["stroke", {}, [1], [2], [3], [0.5]], and the two shapes may be mixed
// inside a sketch. Unknown, duplicate and missing fields are rejected with a
// [models.DecodeError].
//
// Use [DumpsStroke] and [LoadsStroke] (and their sketch and batch variants)
// for strings. Use a [Serializer] for streams and files, and [NewCBORConfig]
// for the compact CBOR form.
package inkdata
