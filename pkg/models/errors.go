package models

import (
	"fmt"

	"github.com/inkdata/inkdata.go/pkg/constants"
)

const (
	entityStroke = "stroke"
	entitySketch = "sketch"
)

// DecodeError describes why a stroke or sketch could not be decoded.
// Err wraps one of the decode errors in pkg/constants.
type DecodeError struct {
	Entity string
	// Field is the wire field involved, if any.
	Field string
	// Index is the positional element involved, or -1.
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Index >= 0:
		return fmt.Sprintf("%s: element %d (%s): %v", e.Entity, e.Index, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %v", e.Entity, e.Field, e.Err)
	case e.Index >= 0:
		return fmt.Sprintf("%s: element %d: %v", e.Entity, e.Index, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// fieldTracker checks the members of a wire record against its required
// field list.
type fieldTracker struct {
	entity string
	names  []string
	seen   []bool
}

func newFieldTracker(entity string, names []string) *fieldTracker {
	return &fieldTracker{
		entity: entity,
		names:  names,
		seen:   make([]bool, len(names)),
	}
}

// mark records that name was present and returns its canonical position.
func (t *fieldTracker) mark(name string) (int, error) {
	for i, field := range t.names {
		if field != name {
			continue
		}
		if t.seen[i] {
			return -1, &DecodeError{Entity: t.entity, Field: name, Index: -1, Err: constants.ErrDuplicateField}
		}
		t.seen[i] = true
		return i, nil
	}
	return -1, &DecodeError{
		Entity: t.entity,
		Field:  name,
		Index:  -1,
		Err:    fmt.Errorf("%w, expected one of %q", constants.ErrUnknownField, t.names),
	}
}

// missing reports the first required field that was never marked.
func (t *fieldTracker) missing() error {
	for i, ok := range t.seen {
		if !ok {
			return &DecodeError{Entity: t.entity, Field: t.names[i], Index: -1, Err: constants.ErrMissingField}
		}
	}
	return nil
}

// arity validates the element count of a positional record.
func (t *fieldTracker) arity(n int) error {
	switch {
	case n < len(t.names):
		return &DecodeError{
			Entity: t.entity,
			Field:  t.names[n],
			Index:  n,
			Err:    fmt.Errorf("%w: got %d elements, want %d", constants.ErrInvalidLength, n, len(t.names)),
		}
	case n > len(t.names):
		return &DecodeError{
			Entity: t.entity,
			Index:  -1,
			Err:    fmt.Errorf("%w: got %d elements, want %d", constants.ErrInvalidLength, n, len(t.names)),
		}
	}
	return nil
}
