package png

import "errors"

var (
	// ErrFormat is wrapped by every structural parse failure.
	ErrFormat = errors.New("png: malformed container")

	ErrInvalidHeader    = errors.New("invalid header")
	ErrIncompleteLength = errors.New("incomplete chunk length")
	ErrIncompleteType   = errors.New("incomplete chunk type")
	ErrIncompleteData   = errors.New("incomplete chunk data")
	ErrIncompleteCRC    = errors.New("incomplete chunk crc")

	// ErrCRCMismatch is returned when a stored CRC differs from the one
	// recomputed over the chunk's type and data.
	ErrCRCMismatch = errors.New("png: crc mismatch")

	ErrNoChunks          = errors.New("png: container must hold at least one chunk")
	ErrChunkNotFound     = errors.New("png: chunk not found")
	ErrInvalidTypeLength = errors.New("png: chunk type selector must be 4 bytes")
)
