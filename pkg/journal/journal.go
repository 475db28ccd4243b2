// Package journal keeps a persistent history of container edits in a pebble
// database keyed by KSUID.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/ssargent/pngstash/pkg/logging"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("journal: entry not found")

// Op names the edit an entry records.
type Op string

const (
	OpEncode Op = "encode"
	OpRemove Op = "remove"
)

// Entry describes one edit applied to a container.
type Entry struct {
	ID        ksuid.KSUID `json:"id"`
	Op        Op          `json:"op"`
	Source    string      `json:"source"`
	ChunkType string      `json:"chunk_type"`
	Length    uint32      `json:"length"`
	CRC       uint32      `json:"crc"`
	Time      time.Time   `json:"time"`
}

// Journal is a pebble-backed edit history.
type Journal struct {
	db *pebble.DB
}

// Open opens or creates a journal at path.
func Open(path string) (*Journal, error) {
	db, err := pebble.Open(path, &pebble.Options{Logger: pebbleLogger{}})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// pebbleLogger sends pebble's internal messages to the shared logger. Routine
// messages such as WAL replay go to debug.
type pebbleLogger struct{}

var _ pebble.Logger = pebbleLogger{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	logging.Logger().Sugar().Debugf(format, args...)
}

func (pebbleLogger) Errorf(format string, args ...interface{}) {
	logging.Logger().Sugar().Errorf(format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	logging.Logger().Sugar().Fatalf(format, args...)
}

// Record stores e under a fresh KSUID and returns the stored entry.
func (j *Journal) Record(e Entry) (Entry, error) {
	e.ID = ksuid.New()
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal entry: %w", err)
	}
	if err := j.db.Set(e.ID.Bytes(), data, pebble.Sync); err != nil {
		return Entry{}, fmt.Errorf("failed to write entry: %w", err)
	}

	logging.Logger().Debug("journal entry recorded",
		zap.String("id", e.ID.String()),
		zap.String("op", string(e.Op)),
		zap.String("chunk_type", e.ChunkType))
	return e, nil
}

// Get returns the entry with the given id.
func (j *Journal) Get(id ksuid.KSUID) (*Entry, error) {
	data, closer, err := j.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry %s: %w", id, err)
	}
	return &e, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
// KSUIDs only order to the second, so entries are sorted by their recorded
// time after loading.
func (j *Journal) List(limit int) ([]Entry, error) {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Time.After(entries[b].Time)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Delete removes the entry with the given id.
func (j *Journal) Delete(id ksuid.KSUID) error {
	return j.db.Delete(id.Bytes(), pebble.Sync)
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
