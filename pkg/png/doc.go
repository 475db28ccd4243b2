// Package png parses, edits and re-encodes PNG-style chunk containers.
//
// A container is an 8 byte signature followed by chunk records until the end
// of the buffer:
//
//	89 50 4E 47 0D 0A 1A 0A
//	[Length(4)][Type(4)][Data][CRC(4)]
//	[Length(4)][Type(4)][Data][CRC(4)]
//	...
//
// Parse is all-or-nothing. A bad signature or a truncated field fails with an
// error wrapping ErrFormat, a stored CRC that does not match the recomputed
// one fails with ErrCRCMismatch, and a buffer with no records fails with
// ErrNoChunks. Image data is never decoded.
//
// A PNG is not safe for concurrent mutation.
package png
