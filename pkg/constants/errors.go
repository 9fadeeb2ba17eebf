package constants

import "errors"

// Decode errors
var (
	ErrUnknownField   = errors.New("unknown field")
	ErrDuplicateField = errors.New("duplicate field")
	ErrMissingField   = errors.New("missing field")
	ErrInvalidLength  = errors.New("invalid length")
	ErrInvalidType    = errors.New("invalid type")
	ErrInvalidShape   = errors.New("expected an array or an object")
	ErrMalformed      = errors.New("malformed JSON")
)

var (
	ErrChannelLength = errors.New("channel lengths differ")
	ErrNoMarshaler   = errors.New("marshaler is not set")
	ErrNoUnmarshaler = errors.New("unmarshaler is not set")
)
