package chunk

import "errors"

var (
	// ErrInvalidType is wrapped by every chunk type validation failure.
	ErrInvalidType = errors.New("chunk: invalid chunk type")

	ErrTypeLength           = errors.New("chunk: type must be exactly 4 characters")
	ErrTypeNotAlphabetic    = errors.New("chunk: type characters must be ASCII letters")
	ErrReservedBitLowercase = errors.New("chunk: third type character must be uppercase")

	// ErrDataTooLarge is returned when a payload reaches the 2^31 byte limit.
	ErrDataTooLarge = errors.New("chunk: data length exceeds limit")
)
