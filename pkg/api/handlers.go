package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/stash"
)

// Server holds the API server state
type Server struct {
	service IStashService
	journal IJournal
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server. journal may be nil when the edit
// history is disabled.
func NewServer(service IStashService, journal IJournal, config ServerConfig, metrics *Metrics) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		service: service,
		journal: journal,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports that the server is up.
//
//	GET /api/v1/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode hides a message in the uploaded container.
//
//	POST /api/v1/encode?type={chunk_type}&message={message}
//	body: container bytes
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	chunkType, ok := requireType(w, r)
	if !ok {
		return
	}
	message := r.URL.Query().Get("message")

	data, ok := s.readContainer(w, r, "encode")
	if !ok {
		return
	}

	out, added, err := s.service.Encode(sourceOf(r), data, chunkType, []byte(message))
	if err != nil {
		sendStashError(w, err)
		return
	}
	s.service.Commit(journal.OpEncode, sourceOf(r), added)
	sendSuccess(w, EncodeResponse{PNG: out, Chunk: added})
}

// handleDecode returns the message stored under a chunk type.
//
//	POST /api/v1/decode?type={chunk_type}
//	body: container bytes
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	chunkType, ok := requireType(w, r)
	if !ok {
		return
	}
	data, ok := s.readContainer(w, r, "decode")
	if !ok {
		return
	}

	msg, err := s.service.Decode(sourceOf(r), data, chunkType)
	if err != nil {
		sendStashError(w, err)
		return
	}
	sendSuccess(w, DecodeResponse{Type: chunkType, Message: msg})
}

// handleRemove deletes the first chunk of a type and returns the new container.
//
//	POST /api/v1/remove?type={chunk_type}
//	body: container bytes
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	chunkType, ok := requireType(w, r)
	if !ok {
		return
	}
	data, ok := s.readContainer(w, r, "remove")
	if !ok {
		return
	}

	out, removed, err := s.service.Remove(sourceOf(r), data, chunkType)
	if err != nil {
		sendStashError(w, err)
		return
	}
	s.service.Commit(journal.OpRemove, sourceOf(r), removed)
	sendSuccess(w, RemoveResponse{PNG: out, Removed: removed.Message})
}

// handleChunks lists every chunk in the uploaded container.
//
//	POST /api/v1/chunks
//	body: container bytes
func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readContainer(w, r, "chunks")
	if !ok {
		return
	}

	entries, err := s.service.List(sourceOf(r), data)
	if err != nil {
		sendStashError(w, err)
		return
	}
	sendSuccess(w, entries)
}

// handleJournal lists recorded edits, newest first.
//
//	GET /api/v1/journal?limit={n}
func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		sendError(w, "Journal is disabled", http.StatusNotFound)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.journal.List(limit)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read journal: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, entries)
}

func requireType(w http.ResponseWriter, r *http.Request) (string, bool) {
	chunkType := r.URL.Query().Get("type")
	if chunkType == "" {
		sendError(w, "Query parameter 'type' is required", http.StatusBadRequest)
		return "", false
	}
	return chunkType, true
}

// readContainer reads the request body, bounded by MaxBodyBytes.
func (s *Server) readContainer(w http.ResponseWriter, r *http.Request, endpoint string) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("Container exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	if len(data) == 0 {
		sendError(w, "Request body must contain a container", http.StatusBadRequest)
		return nil, false
	}

	if s.metrics != nil {
		s.metrics.RecordContainerSize(endpoint, len(data))
	}
	return data, true
}

// sendStashError maps container errors to HTTP status codes. Every failure
// other than a missing chunk is caused by the uploaded bytes or parameters.
func sendStashError(w http.ResponseWriter, err error) {
	if stash.IsNotFound(err) {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	sendError(w, err.Error(), http.StatusBadRequest)
}

func sourceOf(r *http.Request) string {
	if name := r.Header.Get("X-Source-Name"); name != "" {
		return name
	}
	return r.RemoteAddr
}
