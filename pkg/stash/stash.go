// Package stash hides and recovers messages in PNG-style containers. The
// functions here operate on in-memory buffers; reading and writing files is
// left to the caller.
package stash

import (
	"errors"
	"fmt"

	"github.com/ssargent/pngstash/pkg/chunk"
	"github.com/ssargent/pngstash/pkg/png"
)

// Entry is the presentation view of one chunk.
type Entry struct {
	Type    string `json:"type"`
	Length  uint32 `json:"length"`
	Message string `json:"message"`
	CRC     uint32 `json:"crc"`
}

func entryOf(c *chunk.Chunk) Entry {
	return Entry{
		Type:    c.Type().String(),
		Length:  c.Length(),
		Message: c.DataString(),
		CRC:     c.CRC(),
	}
}

// IsNotFound reports whether err means the requested chunk type is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, png.ErrChunkNotFound)
}

// NewChunk validates chunkType and builds a chunk carrying message.
func NewChunk(chunkType string, message []byte) (*chunk.Chunk, error) {
	t, err := chunk.ParseType(chunkType)
	if err != nil {
		return nil, err
	}
	return chunk.New(t, message)
}

// Encode parses original, appends a chunk of chunkType carrying message and
// returns the re-encoded container. A malformed original is rejected.
func Encode(original []byte, chunkType string, message []byte) ([]byte, *chunk.Chunk, error) {
	p, err := png.Parse(original)
	if err != nil {
		return nil, nil, err
	}
	c, err := NewChunk(chunkType, message)
	if err != nil {
		return nil, nil, err
	}
	p.Append(c)
	return p.Bytes(), c, nil
}

// AppendRaw appends a chunk of chunkType carrying message to original
// without parsing or validating the existing bytes. original is not modified.
func AppendRaw(original []byte, chunkType string, message []byte) ([]byte, *chunk.Chunk, error) {
	c, err := NewChunk(chunkType, message)
	if err != nil {
		return nil, nil, err
	}
	out := make([]byte, len(original), len(original)+c.Size())
	copy(out, original)
	return c.AppendTo(out), c, nil
}

// Decode returns the payload of the first chunk of chunkType as text.
func Decode(data []byte, chunkType string) (string, error) {
	t, err := chunk.ParseType(chunkType)
	if err != nil {
		return "", err
	}
	p, err := png.Parse(data)
	if err != nil {
		return "", err
	}
	c := p.ChunkByType(t.String())
	if c == nil {
		return "", fmt.Errorf("%w: %q", png.ErrChunkNotFound, chunkType)
	}
	return c.DataString(), nil
}

// Remove deletes the first chunk of chunkType and returns the re-encoded
// container together with the removed chunk.
func Remove(data []byte, chunkType string) ([]byte, *chunk.Chunk, error) {
	p, err := png.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	removed, err := p.RemoveFirst(chunkType)
	if err != nil {
		return nil, nil, err
	}
	return p.Bytes(), removed, nil
}

// List returns a presentation view of every chunk in container order.
func List(data []byte) ([]Entry, error) {
	p, err := png.Parse(data)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, p.Len())
	for _, c := range p.Chunks() {
		entries = append(entries, entryOf(c))
	}
	return entries, nil
}
