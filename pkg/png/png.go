package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/ssargent/pngstash/pkg/chunk"
)

// SignatureSize is the length of the fixed file signature.
const SignatureSize = 8

// Signature is the fixed prefix of every container.
var Signature = [SignatureSize]byte{137, 80, 78, 71, 13, 10, 26, 10}

// PNG is an ordered, non-empty sequence of chunks. Order is preserved across
// Parse and Bytes and decides which chunk a lookup returns.
type PNG struct {
	chunks []*chunk.Chunk
}

// FromChunks builds a container from chunks, which must not be empty.
func FromChunks(chunks []*chunk.Chunk) (*PNG, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	return &PNG{chunks: slices.Clone(chunks)}, nil
}

// Parse decodes a full container. Any malformed, truncated or corrupt
// record fails the whole parse; no partial container is returned.
func Parse(data []byte) (*PNG, error) {
	if len(data) < SignatureSize || !bytes.Equal(data[:SignatureSize], Signature[:]) {
		return nil, fmt.Errorf("%w: %w", ErrFormat, ErrInvalidHeader)
	}

	var chunks []*chunk.Chunk
	offset := SignatureSize
	for offset < len(data) {
		c, n, err := readChunk(data, offset)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
		offset += n
	}

	return FromChunks(chunks)
}

// readChunk decodes the record starting at offset and returns the chunk and
// the number of bytes consumed.
func readChunk(data []byte, offset int) (*chunk.Chunk, int, error) {
	start := offset
	remaining := func() int { return len(data) - offset }

	if remaining() < 4 {
		return nil, 0, fmt.Errorf("%w: %w at offset %d", ErrFormat, ErrIncompleteLength, start)
	}
	length := binary.BigEndian.Uint32(data[offset:])
	offset += 4

	if remaining() < chunk.TypeSize {
		return nil, 0, fmt.Errorf("%w: %w at offset %d", ErrFormat, ErrIncompleteType, start)
	}
	var code [chunk.TypeSize]byte
	copy(code[:], data[offset:])
	offset += chunk.TypeSize

	if uint64(remaining()) < uint64(length) {
		return nil, 0, fmt.Errorf("%w: %w at offset %d: declared %d bytes, %d remain",
			ErrFormat, ErrIncompleteData, start, length, remaining())
	}
	payload := data[offset : offset+int(length)]
	offset += int(length)

	if remaining() < 4 {
		return nil, 0, fmt.Errorf("%w: %w at offset %d", ErrFormat, ErrIncompleteCRC, start)
	}
	stored := binary.BigEndian.Uint32(data[offset:])
	offset += 4

	// The CRC is checked over the raw bytes first so that a corrupted type
	// code is reported as corruption rather than as a bad type.
	if computed := chunk.RawChecksum(code, payload); computed != stored {
		return nil, 0, fmt.Errorf("%w: %q chunk at offset %d: stored 0x%08x, computed 0x%08x",
			ErrCRCMismatch, code[:], start, stored, computed)
	}

	chunkType, err := chunk.TypeFromBytes(code)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w at offset %d", ErrFormat, err, start)
	}
	c, err := chunk.New(chunkType, bytes.Clone(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: chunk at offset %d: %w", ErrFormat, start, err)
	}

	return c, offset - start, nil
}

// Append adds c to the end of the container.
func (p *PNG) Append(c *chunk.Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveFirst removes and returns the first chunk whose type bytes equal
// chunkType. The order of the remaining chunks is preserved. Removing the
// only chunk fails with ErrNoChunks and leaves p unchanged.
func (p *PNG) RemoveFirst(chunkType string) (*chunk.Chunk, error) {
	if len(chunkType) != chunk.TypeSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidTypeLength, len(chunkType))
	}

	i := p.indexOf(chunkType)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, chunkType)
	}
	if len(p.chunks) == 1 {
		return nil, fmt.Errorf("removing %q would leave the container empty: %w", chunkType, ErrNoChunks)
	}

	removed := p.chunks[i]
	p.chunks = slices.Delete(p.chunks, i, i+1)
	return removed, nil
}

// ChunkByType returns the first chunk of the given type, or nil when none
// matches or chunkType is not a valid type code.
func (p *PNG) ChunkByType(chunkType string) *chunk.Chunk {
	target, err := chunk.ParseType(chunkType)
	if err != nil {
		return nil
	}
	for _, c := range p.chunks {
		if c.Type() == target {
			return c
		}
	}
	return nil
}

// FindChunk returns the first chunk whose raw type bytes equal chunkType,
// without validating chunkType as a type code.
func (p *PNG) FindChunk(chunkType string) *chunk.Chunk {
	if len(chunkType) != chunk.TypeSize {
		return nil
	}
	if i := p.indexOf(chunkType); i >= 0 {
		return p.chunks[i]
	}
	return nil
}

func (p *PNG) indexOf(chunkType string) int {
	return slices.IndexFunc(p.chunks, func(c *chunk.Chunk) bool {
		code := c.Type().Bytes()
		return string(code[:]) == chunkType
	})
}

// Header returns the container signature.
func (p *PNG) Header() [SignatureSize]byte {
	return Signature
}

// Chunks returns the chunks in container order. The slice is a copy; the
// chunks themselves are shared and immutable.
func (p *PNG) Chunks() []*chunk.Chunk {
	return slices.Clone(p.chunks)
}

// Len returns the number of chunks.
func (p *PNG) Len() int {
	return len(p.chunks)
}

// Size returns the encoded size of the container.
func (p *PNG) Size() int {
	n := SignatureSize
	for _, c := range p.chunks {
		n += c.Size()
	}
	return n
}

// Bytes serializes the signature followed by every chunk in order.
func (p *PNG) Bytes() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.AppendTo(buf)
	}
	return buf
}

func (p *PNG) String() string {
	return fmt.Sprintf("PNG{chunks: %d, size: %d}", len(p.chunks), p.Size())
}
