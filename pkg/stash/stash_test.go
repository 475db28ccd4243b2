package stash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pngstash/pkg/chunk"
	"github.com/ssargent/pngstash/pkg/png"
)

// minimalPNG returns a signature followed by a single empty IHDR chunk.
func minimalPNG(t *testing.T) []byte {
	t.Helper()
	c, err := chunk.New(chunk.MustParseType("IHDR"), nil)
	require.NoError(t, err)
	p, err := png.FromChunks([]*chunk.Chunk{c})
	require.NoError(t, err)
	return p.Bytes()
}

func TestEncodeDecode(t *testing.T) {
	original := minimalPNG(t)
	snapshot := bytes.Clone(original)

	encoded, c, err := Encode(original, "ruSt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "ruSt", c.Type().String())
	assert.Equal(t, snapshot, original)
	assert.Equal(t, len(original)+12+5, len(encoded))

	msg, err := Decode(encoded, "ruSt")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg)
}

func TestEncode_RejectsInvalidInput(t *testing.T) {
	_, _, err := Encode(minimalPNG(t), "rust", []byte("hello"))
	assert.ErrorIs(t, err, chunk.ErrInvalidType)

	_, _, err = Encode([]byte("not a png"), "ruSt", []byte("hello"))
	assert.ErrorIs(t, err, png.ErrFormat)

	corrupt := minimalPNG(t)
	corrupt[len(corrupt)-1] ^= 0xFF
	_, _, err = Encode(corrupt, "ruSt", []byte("hello"))
	assert.ErrorIs(t, err, png.ErrCRCMismatch)
}

func TestAppendRaw(t *testing.T) {
	corrupt := minimalPNG(t)
	corrupt[len(corrupt)-1] ^= 0xFF
	snapshot := bytes.Clone(corrupt)

	out, c, err := AppendRaw(corrupt, "ruSt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, snapshot, corrupt)
	assert.Equal(t, snapshot, out[:len(snapshot)])
	assert.Equal(t, c.Bytes(), out[len(snapshot):])

	_, _, err = AppendRaw(corrupt, "ru5t", []byte("hello"))
	assert.ErrorIs(t, err, chunk.ErrInvalidType)
}

func TestDecode_NotFound(t *testing.T) {
	original := minimalPNG(t)
	snapshot := bytes.Clone(original)

	_, err := Decode(original, "ruSt")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, snapshot, original)
}

func TestDecode_InvalidType(t *testing.T) {
	_, err := Decode(minimalPNG(t), "bad")
	assert.ErrorIs(t, err, chunk.ErrInvalidType)
	assert.False(t, IsNotFound(err))
}

func TestRemove(t *testing.T) {
	encoded, _, err := Encode(minimalPNG(t), "ruSt", []byte("hello"))
	require.NoError(t, err)

	out, removed, err := Remove(encoded, "ruSt")
	require.NoError(t, err)
	assert.Equal(t, "hello", removed.DataString())
	assert.Equal(t, minimalPNG(t), out)

	_, err = Decode(out, "ruSt")
	assert.True(t, IsNotFound(err))
}

func TestRemove_Errors(t *testing.T) {
	_, _, err := Remove(minimalPNG(t), "ruSt")
	assert.True(t, IsNotFound(err))

	_, _, err = Remove(minimalPNG(t), "ru")
	assert.ErrorIs(t, err, png.ErrInvalidTypeLength)

	_, _, err = Remove(minimalPNG(t), "IHDR")
	assert.ErrorIs(t, err, png.ErrNoChunks)
}

func TestList(t *testing.T) {
	encoded, _, err := Encode(minimalPNG(t), "ruSt", []byte("hello"))
	require.NoError(t, err)

	entries, err := List(encoded)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{Type: "IHDR", Length: 0, Message: "", CRC: 0xa8a1ae0a}, entries[0])
	assert.Equal(t, Entry{Type: "ruSt", Length: 5, Message: "hello", CRC: 0xae508d6f}, entries[1])

	_, err = List([]byte{1, 2, 3})
	assert.ErrorIs(t, err, png.ErrInvalidHeader)
}
