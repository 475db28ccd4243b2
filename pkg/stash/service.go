package stash

import (
	"time"

	"go.uber.org/zap"

	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/logging"
)

const (
	OpEncode = "encode"
	OpDecode = "decode"
	OpRemove = "remove"
	OpList   = "list"
)

// Operation outcomes reported to an Observer.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Recorder persists container edits.
type Recorder interface {
	Record(e journal.Entry) (journal.Entry, error)
}

// Observer is notified after every operation, e.g. to update metrics.
type Observer interface {
	ObserveOperation(op, status string, duration time.Duration)
}

// Service wraps the buffer operations with logging, an optional edit
// journal and an optional observer.
type Service struct {
	recorder Recorder
	observer Observer
	raw      bool
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder journals edits passed to Commit.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithObserver reports operation outcomes to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithRawAppend makes Encode append without re-validating the container.
func WithRawAppend(raw bool) Option {
	return func(s *Service) { s.raw = raw }
}

// NewService creates a service with the given options.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encode hides message under chunkType in data and returns the new container
// and a view of the added chunk. source names the container in logs. The edit
// is not journaled until the caller passes the entry to Commit.
func (s *Service) Encode(source string, data []byte, chunkType string, message []byte) ([]byte, Entry, error) {
	start := time.Now()

	encode := Encode
	if s.raw {
		encode = AppendRaw
	}
	out, c, err := encode(data, chunkType, message)
	s.finish(OpEncode, source, chunkType, start, err)
	if err != nil {
		return nil, Entry{}, err
	}
	return out, entryOf(c), nil
}

// Decode returns the message stored under chunkType.
func (s *Service) Decode(source string, data []byte, chunkType string) (string, error) {
	start := time.Now()
	msg, err := Decode(data, chunkType)
	s.finish(OpDecode, source, chunkType, start, err)
	return msg, err
}

// Remove deletes the first chunk of chunkType and returns the new container
// and a view of the removed chunk. Like Encode, it does not journal.
func (s *Service) Remove(source string, data []byte, chunkType string) ([]byte, Entry, error) {
	start := time.Now()
	out, c, err := Remove(data, chunkType)
	s.finish(OpRemove, source, chunkType, start, err)
	if err != nil {
		return nil, Entry{}, err
	}
	return out, entryOf(c), nil
}

// Commit journals an edit once its result has been stored or delivered.
// A journal failure is logged and does not undo the edit.
func (s *Service) Commit(op journal.Op, source string, e Entry) {
	if s.recorder == nil {
		return
	}
	_, err := s.recorder.Record(journal.Entry{
		Op:        op,
		Source:    source,
		ChunkType: e.Type,
		Length:    e.Length,
		CRC:       e.CRC,
	})
	if err != nil {
		logging.Logger().Error("failed to journal edit",
			zap.String("op", string(op)),
			zap.String("source", source),
			zap.Error(err))
	}
}

// List returns a view of every chunk in data.
func (s *Service) List(source string, data []byte) ([]Entry, error) {
	start := time.Now()
	entries, err := List(data)
	s.finish(OpList, source, "", start, err)
	return entries, err
}

func (s *Service) finish(op, source, chunkType string, start time.Time, err error) {
	elapsed := time.Since(start)
	if s.observer != nil {
		s.observer.ObserveOperation(op, statusOf(err), elapsed)
	}

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("source", source),
		zap.Duration("elapsed", elapsed),
	}
	if chunkType != "" {
		fields = append(fields, zap.String("chunk_type", chunkType))
	}

	switch {
	case err == nil:
		logging.Logger().Debug("stash operation completed", fields...)
	case IsNotFound(err):
		logging.Logger().Info("chunk not found", fields...)
	default:
		logging.Logger().Warn("stash operation failed", append(fields, zap.Error(err))...)
	}
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsNotFound(err):
		return StatusNotFound
	default:
		return StatusError
	}
}
