package api

import (
	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/stash"
)

// DefaultMaxBodyBytes caps the size of an uploaded container.
const DefaultMaxBodyBytes = 32 << 20

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EncodeResponse is returned by the encode endpoint. PNG is base64 encoded
// in JSON.
type EncodeResponse struct {
	PNG   []byte      `json:"png"`
	Chunk stash.Entry `json:"chunk"`
}

// DecodeResponse is returned by the decode endpoint
type DecodeResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RemoveResponse is returned by the remove endpoint
type RemoveResponse struct {
	PNG     []byte `json:"png"`
	Removed string `json:"removed"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port         int
	Bind         string
	APIKey       string
	MaxBodyBytes int64
}

// IStashService defines the container operations served over HTTP
type IStashService interface {
	Encode(source string, data []byte, chunkType string, message []byte) ([]byte, stash.Entry, error)
	Decode(source string, data []byte, chunkType string) (string, error)
	Remove(source string, data []byte, chunkType string) ([]byte, stash.Entry, error)
	Commit(op journal.Op, source string, e stash.Entry)
	List(source string, data []byte) ([]stash.Entry, error)
}

// IJournal defines read access to the edit history
type IJournal interface {
	List(limit int) ([]journal.Entry, error)
}
