// Package chunk implements the typed, checksummed record that makes up a
// PNG-style container.
//
// # Chunk Format
//
//	[Length(4)][Type(4)][Data][CRC(4)]
//
// Fields:
//   - Length: payload size in bytes, big-endian, always below 2^31
//   - Type: four ASCII letters, see Type
//   - Data: the opaque payload
//   - CRC: CRC-32 (ISO-HDLC) of Type followed by Data, big-endian
//
// The encoded size of a chunk is 12 + Length.
//
// # Type Codes
//
// The case of each type letter carries one property bit:
//
//	byte 0  uppercase = critical
//	byte 1  uppercase = public
//	byte 2  uppercase = reserved bit valid (required)
//	byte 3  uppercase = safe to copy
//
// # Usage
//
//	t, err := chunk.ParseType("ruSt")
//	if err != nil {
//	    return err
//	}
//	c, err := chunk.New(t, []byte("hello"))
//	if err != nil {
//	    return err
//	}
//	encoded := c.Bytes()
//
// Validation failures wrap ErrInvalidType; payloads at or over 2^31 bytes
// fail with ErrDataTooLarge. Chunks are immutable after construction and
// safe to share between goroutines.
package chunk
