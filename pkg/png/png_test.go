package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pngstash/pkg/chunk"
)

func newChunk(t *testing.T, chunkType, data string) *chunk.Chunk {
	t.Helper()
	c, err := chunk.New(chunk.MustParseType(chunkType), []byte(data))
	require.NoError(t, err)
	return c
}

func testChunks(t *testing.T) []*chunk.Chunk {
	return []*chunk.Chunk{
		newChunk(t, "FrSt", "I am the first chunk"),
		newChunk(t, "miDl", "I am another chunk"),
		newChunk(t, "LASt", "I am the last chunk"),
	}
}

func testPNG(t *testing.T) *PNG {
	t.Helper()
	p, err := FromChunks(testChunks(t))
	require.NoError(t, err)
	return p
}

// record hand-encodes a chunk record with the given stored CRC.
func record(length uint32, chunkType string, data []byte, crc uint32) []byte {
	buf := make([]byte, 0, 12+len(data))
	buf = binary.BigEndian.AppendUint32(buf, length)
	buf = append(buf, chunkType...)
	buf = append(buf, data...)
	return binary.BigEndian.AppendUint32(buf, crc)
}

func validRecord(chunkType string, data []byte) []byte {
	crc := crc32.ChecksumIEEE(append([]byte(chunkType), data...))
	return record(uint32(len(data)), chunkType, data, crc)
}

func withSignature(records ...[]byte) []byte {
	buf := append([]byte(nil), Signature[:]...)
	for _, r := range records {
		buf = append(buf, r...)
	}
	return buf
}

func TestFromChunks(t *testing.T) {
	p := testPNG(t)
	assert.Equal(t, 3, p.Len())

	_, err := FromChunks(nil)
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestParse_SingleEmptyChunk(t *testing.T) {
	buf := withSignature(validRecord("IHDR", nil))

	p, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())

	c := p.Chunks()[0]
	assert.Equal(t, "IHDR", c.Type().String())
	assert.Empty(t, c.Data())
	assert.Equal(t, uint32(0), c.Length())
}

func TestParse_RoundTrip(t *testing.T) {
	p := testPNG(t)
	encoded := p.Bytes()

	parsed, err := Parse(encoded)
	require.NoError(t, err)

	require.Equal(t, p.Len(), parsed.Len())
	for i, c := range parsed.Chunks() {
		want := p.Chunks()[i]
		assert.Equal(t, want.Type(), c.Type())
		assert.Equal(t, want.Data(), c.Data())
		assert.Equal(t, want.CRC(), c.CRC())
	}
	assert.Equal(t, encoded, parsed.Bytes())
}

func TestParse_DoesNotAliasInput(t *testing.T) {
	buf := withSignature(validRecord("ruSt", []byte("hello")))

	p, err := Parse(buf)
	require.NoError(t, err)

	buf[SignatureSize+8] = 'j'
	assert.Equal(t, "hello", p.Chunks()[0].DataString())
}

func TestParse_Errors(t *testing.T) {
	good := validRecord("IHDR", []byte("header"))

	testCases := []struct {
		name    string
		input   []byte
		wantErr []error
	}{
		{
			name:    "empty buffer",
			input:   nil,
			wantErr: []error{ErrFormat, ErrInvalidHeader},
		},
		{
			name:    "wrong signature",
			input:   append([]byte{137, 80, 78, 71, 13, 10, 26, 11}, good...),
			wantErr: []error{ErrFormat, ErrInvalidHeader},
		},
		{
			name:    "short signature",
			input:   Signature[:5],
			wantErr: []error{ErrFormat, ErrInvalidHeader},
		},
		{
			name:    "signature only",
			input:   withSignature(),
			wantErr: []error{ErrNoChunks},
		},
		{
			name:    "incomplete length",
			input:   withSignature(good, []byte{0, 0}),
			wantErr: []error{ErrFormat, ErrIncompleteLength},
		},
		{
			name:    "incomplete type",
			input:   withSignature(good, []byte{0, 0, 0, 0, 'r', 'u'}),
			wantErr: []error{ErrFormat, ErrIncompleteType},
		},
		{
			name:    "truncated data",
			input:   withSignature(good, record(100, "ruSt", bytes.Repeat([]byte("x"), 10), 0)[:18]),
			wantErr: []error{ErrFormat, ErrIncompleteData},
		},
		{
			name:    "incomplete crc",
			input:   withSignature(good, validRecord("ruSt", []byte("hi"))[:12]),
			wantErr: []error{ErrFormat, ErrIncompleteCRC},
		},
		{
			name:    "invalid chunk type",
			input:   withSignature(validRecord("ru1t", []byte("hi"))),
			wantErr: []error{ErrFormat, chunk.ErrInvalidType},
		},
		{
			name:    "lowercase reserved bit",
			input:   withSignature(validRecord("rust", []byte("hi"))),
			wantErr: []error{ErrFormat, chunk.ErrReservedBitLowercase},
		},
		{
			name:    "crc mismatch",
			input:   withSignature(record(2, "ruSt", []byte("hi"), 0xDEADBEEF)),
			wantErr: []error{ErrCRCMismatch},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.input)
			assert.Nil(t, p)
			require.Error(t, err)
			for _, want := range tc.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestParse_TruncatedFinalChunk(t *testing.T) {
	// Declares 100 bytes of data with only 10 present.
	tail := append(binary.BigEndian.AppendUint32(nil, 100), "ruSt"...)
	tail = append(tail, bytes.Repeat([]byte{'x'}, 10)...)
	buf := withSignature(validRecord("IHDR", nil), tail)

	p, err := Parse(buf)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrIncompleteData)
}

func TestParse_TamperDetection(t *testing.T) {
	c := newChunk(t, "ruSt", "tamper with me")
	p, err := FromChunks([]*chunk.Chunk{c})
	require.NoError(t, err)
	encoded := p.Bytes()

	// Type and data region, excluding the length prefix and stored CRC.
	start := SignatureSize + 4
	end := SignatureSize + 8 + int(c.Length())

	for i := start; i < end; i++ {
		for bit := 0; bit < 8; bit++ {
			tampered := bytes.Clone(encoded)
			tampered[i] ^= 1 << bit

			_, err := Parse(tampered)
			require.Error(t, err, "byte %d bit %d", i, bit)
			assert.ErrorIs(t, err, ErrCRCMismatch, "byte %d bit %d", i, bit)
		}
	}
}

func TestPNG_Append(t *testing.T) {
	p := testPNG(t)
	p.Append(newChunk(t, "TeSt", "Message"))

	require.Equal(t, 4, p.Len())
	last := p.Chunks()[3]
	assert.Equal(t, "TeSt", last.Type().String())
	assert.Equal(t, "Message", last.DataString())
}

func TestPNG_RemoveFirst(t *testing.T) {
	p := testPNG(t)
	p.Append(newChunk(t, "TeSt", "Message"))
	p.Append(newChunk(t, "TeSt", "Second"))

	removed, err := p.RemoveFirst("TeSt")
	require.NoError(t, err)
	assert.Equal(t, "Message", removed.DataString())

	types := make([]string, 0, p.Len())
	for _, c := range p.Chunks() {
		types = append(types, c.Type().String())
	}
	assert.Equal(t, []string{"FrSt", "miDl", "LASt", "TeSt"}, types)
	assert.Equal(t, "Second", p.ChunkByType("TeSt").DataString())
}

func TestPNG_RemoveFirst_PreservesOrder(t *testing.T) {
	p := testPNG(t)
	p.Append(newChunk(t, "TeSt", "Message"))

	_, err := p.RemoveFirst("miDl")
	require.NoError(t, err)

	var types []string
	for _, c := range p.Chunks() {
		types = append(types, c.Type().String())
	}
	assert.Equal(t, []string{"FrSt", "LASt", "TeSt"}, types)
}

func TestPNG_RemoveFirst_Errors(t *testing.T) {
	p := testPNG(t)

	_, err := p.RemoveFirst("NoPe")
	assert.ErrorIs(t, err, ErrChunkNotFound)

	_, err = p.RemoveFirst("abc")
	assert.ErrorIs(t, err, ErrInvalidTypeLength)

	_, err = p.RemoveFirst("toolong")
	assert.ErrorIs(t, err, ErrInvalidTypeLength)

	assert.Equal(t, 3, p.Len())
}

func TestPNG_RemoveFirst_LastChunk(t *testing.T) {
	p, err := FromChunks([]*chunk.Chunk{newChunk(t, "IHDR", "")})
	require.NoError(t, err)
	before := p.Bytes()

	_, err = p.RemoveFirst("IHDR")
	assert.ErrorIs(t, err, ErrNoChunks)
	assert.Equal(t, 1, p.Len())

	reparsed, err := Parse(p.Bytes())
	require.NoError(t, err)
	assert.Equal(t, before, reparsed.Bytes())
}

func TestPNG_ChunkByType(t *testing.T) {
	p := testPNG(t)

	c := p.ChunkByType("FrSt")
	require.NotNil(t, c)
	assert.Equal(t, "I am the first chunk", c.DataString())

	assert.Nil(t, p.ChunkByType("NoPe"))
	assert.Nil(t, p.ChunkByType("frst"))
	assert.Nil(t, p.ChunkByType("x"))
}

func TestPNG_FindChunk(t *testing.T) {
	p := testPNG(t)

	assert.NotNil(t, p.FindChunk("miDl"))
	assert.Nil(t, p.FindChunk("midl"))
	assert.Nil(t, p.FindChunk("mi"))
}

func TestPNG_ChunksIsACopy(t *testing.T) {
	p := testPNG(t)

	chunks := p.Chunks()
	chunks[0] = nil
	assert.NotNil(t, p.Chunks()[0])
}

func TestPNG_Bytes(t *testing.T) {
	p := testPNG(t)
	encoded := p.Bytes()

	assert.Equal(t, Signature[:], encoded[:SignatureSize])
	assert.Equal(t, p.Size(), len(encoded))

	var want []byte
	want = append(want, Signature[:]...)
	for _, c := range testChunks(t) {
		want = append(want, c.Bytes()...)
	}
	assert.Equal(t, want, encoded)
}

func TestPNG_Header(t *testing.T) {
	p := testPNG(t)
	assert.Equal(t, [8]byte{137, 80, 78, 71, 13, 10, 26, 10}, p.Header())
}
