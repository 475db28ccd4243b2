package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
)

const (
	// MaxDataLength is the largest payload a chunk may carry (2^31 - 1).
	MaxDataLength = 1<<31 - 1

	// Overhead is the number of bytes a chunk adds around its payload:
	// Length(4) + Type(4) + CRC(4).
	Overhead = 12
)

// Chunk is a single length-prefixed, typed and checksummed record.
// Chunks are immutable; the CRC is derived from the type and data.
type Chunk struct {
	chunkType Type
	data      []byte
	crc       uint32
}

// New builds a chunk from a type and payload and computes its CRC.
// The chunk takes ownership of data; callers must not modify it afterwards.
func New(chunkType Type, data []byte) (*Chunk, error) {
	if err := CheckLength(len(data)); err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}

	return &Chunk{
		chunkType: chunkType,
		data:      data,
		crc:       Checksum(chunkType, data),
	}, nil
}

// CheckLength reports whether n bytes fit in a single chunk.
func CheckLength(n int) error {
	if n < 0 || uint64(n) > MaxDataLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDataTooLarge, n, MaxDataLength)
	}
	return nil
}

// Checksum computes the CRC-32 (ISO-HDLC, as used by PNG) of the type bytes
// followed by data. The length field is not part of the checksum.
func Checksum(chunkType Type, data []byte) uint32 {
	return RawChecksum(chunkType.Bytes(), data)
}

// RawChecksum is Checksum over an unvalidated type code.
func RawChecksum(code [TypeSize]byte, data []byte) uint32 {
	crc := crc32.NewIEEE()
	// hash.Hash never returns an error from Write
	_, _ = crc.Write(code[:])
	_, _ = crc.Write(data)
	return crc.Sum32()
}

// Length returns the payload size in bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c *Chunk) Type() Type {
	return c.chunkType
}

// Data returns the payload. The returned slice must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the checksum computed at construction.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Size returns the encoded size of the chunk.
func (c *Chunk) Size() int {
	return Overhead + len(c.data)
}

// Bytes serializes the chunk.
// Format: [Length(4)][Type(4)][Data][CRC(4)], integers big-endian.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, c.Size())
	c.put(buf)
	return buf
}

// AppendTo appends the serialized chunk to dst and returns the extended slice.
func (c *Chunk) AppendTo(dst []byte) []byte {
	n := len(dst)
	if cap(dst)-n < c.Size() {
		grown := make([]byte, n, n+c.Size())
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:n+c.Size()]
	c.put(dst[n:])
	return dst
}

func (c *Chunk) put(buf []byte) {
	code := c.chunkType.Bytes()
	binary.BigEndian.PutUint32(buf[0:4], c.Length())
	copy(buf[4:8], code[:])
	copy(buf[8:], c.data)
	binary.BigEndian.PutUint32(buf[8+len(c.data):], c.crc)
}

// DataString returns the payload as text, replacing invalid UTF-8 with U+FFFD.
func (c *Chunk) DataString() string {
	return strings.ToValidUTF8(string(c.data), "\uFFFD")
}

func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk{length: %d, type: %s, crc: 0x%08x}", c.Length(), c.chunkType, c.crc)
}

// Describe writes the length, type summary, payload text and CRC to w.
func (c *Chunk) Describe(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Length: %d\n", c.Length())
	c.chunkType.describeTo(&b)
	fmt.Fprintf(&b, "Data: %s\n", c.DataString())
	fmt.Fprintf(&b, "CRC: 0x%08x\n", c.crc)
	_, err := io.WriteString(w, b.String())
	return err
}
