// Package store persists each entity kind as one JSON array on disk.
//
// A collection is always read and written whole. Writes go to a temporary
// file in the same directory which is fsynced and renamed over the live
// file, so a reader observes either the previous or the next contents and a
// failed write leaves the previous contents in place.
//
// Mutations are read-modify-write sequences (see Collection.Update) and are
// serialized per kind. Reads take no lock.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/facultyhub/internal/pkg/apperrors"
)

// DB is the set of collections living in one data directory.
type DB struct {
	dir        string
	ids        *IDGenerator
	logger     zerolog.Logger
	locking    bool
	retries    int
	retryDelay time.Duration
	afterLoad  func(Kind)

	mu    sync.Mutex
	locks map[Kind]*sync.Mutex
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(db *DB) { db.logger = logger }
}

// WithRetry sets how many times a failed write is retried and the delay
// between attempts. Only I/O errors are retried.
func WithRetry(retries int, delay time.Duration) Option {
	return func(db *DB) {
		if retries >= 0 {
			db.retries = retries
		}
		db.retryDelay = delay
	}
}

// WithoutLocking disables per-collection mutual exclusion. Concurrent
// read-modify-write sequences then lose updates; only tests use this.
func WithoutLocking() Option {
	return func(db *DB) { db.locking = false }
}

// WithAfterLoad installs a hook that runs inside Update between loading the
// collection and writing it back.
func WithAfterLoad(hook func(Kind)) Option {
	return func(db *DB) { db.afterLoad = hook }
}

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string, opts ...Option) (*DB, error) {
	ids, err := NewIDGenerator()
	if err != nil {
		return nil, err
	}
	db := &DB{
		dir:        dir,
		ids:        ids,
		logger:     zerolog.Nop(),
		locking:    true,
		retries:    3,
		retryDelay: 50 * time.Millisecond,
		locks:      make(map[Kind]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(db)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrIO, fmt.Sprintf("creating data directory %s: %v", dir, err))
	}
	return db, nil
}

// Init writes an empty collection for every kind that has no file yet.
func (db *DB) Init(ctx context.Context) error {
	for _, kind := range AllKinds {
		_, err := os.Stat(db.path(kind))
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return ioError(kind, "stat", err)
		}
		unlock := db.lock(kind)
		err = db.write(ctx, kind, []byte("[]\n"))
		unlock()
		if err != nil {
			return err
		}
		db.logger.Info().Str("collection", kind.String()).Msg("Initialized empty collection")
	}
	return nil
}

// Dir returns the data directory.
func (db *DB) Dir() string {
	return db.dir
}

// NextID returns a fresh document id.
func (db *DB) NextID() string {
	return db.ids.Next()
}

func (db *DB) path(kind Kind) string {
	return filepath.Join(db.dir, kind.FileName())
}

// lock acquires the mutex of a kind and returns its release func.
func (db *DB) lock(kind Kind) func() {
	if !db.locking {
		return func() {}
	}
	db.mu.Lock()
	m, ok := db.locks[kind]
	if !ok {
		m = &sync.Mutex{}
		db.locks[kind] = m
	}
	db.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// readRaw returns the raw collection file; a missing file yields nil.
func (db *DB) readRaw(ctx context.Context, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(db.path(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ioError(kind, "read", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, corruptError(kind, errors.New("content is not a JSON array"))
	}
	return data, nil
}

// write atomically replaces the collection file, retrying I/O failures.
func (db *DB) write(ctx context.Context, kind Kind, data []byte) error {
	var err error
	for attempt := 0; attempt <= db.retries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if attempt > 0 {
			db.logger.Warn().Err(err).Str("collection", kind.String()).Int("attempt", attempt).Msg("Retrying collection write")
			time.Sleep(db.retryDelay)
		}
		err = db.swap(kind, data)
		if err == nil || !apperrors.Retryable(err) {
			return err
		}
	}
	db.logger.Error().Err(err).Str("collection", kind.String()).Msg("Collection write failed after retries")
	return err
}

// swap writes data to a temp file and renames it over the collection file.
func (db *DB) swap(kind Kind, data []byte) error {
	tmp, err := os.CreateTemp(db.dir, "."+kind.FileName()+".*.tmp")
	if err != nil {
		return ioError(kind, "create temp file", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return ioError(kind, "write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return ioError(kind, "sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return ioError(kind, "close temp file", err)
	}
	if err := os.Rename(tmpName, db.path(kind)); err != nil {
		return ioError(kind, "rename temp file", err)
	}
	committed = true

	// Persist the rename itself. Not every platform can fsync a directory.
	if dir, err := os.Open(db.dir); err == nil {
		_ = dir.Sync()
		dir.Close()
	}
	return nil
}

// Documents returns every record of a kind as a generic JSON object keyed by
// its id. It never writes.
func (db *DB) Documents(ctx context.Context, kind Kind) (map[string]map[string]any, error) {
	data, err := db.readRaw(ctx, kind)
	if err != nil {
		return nil, err
	}
	docs := make(map[string]map[string]any)
	if data == nil {
		return docs, nil
	}
	var list []map[string]any
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, corruptError(kind, err)
	}
	for _, doc := range list {
		if id := DocumentID(doc["_id"]); id != "" {
			docs[id] = doc
		}
	}
	return docs, nil
}

// DocumentID extracts an id from either {"$oid": "..."} or a bare string.
func DocumentID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case map[string]any:
		if s, ok := id["$oid"].(string); ok {
			return s
		}
	}
	return ""
}

func ioError(kind Kind, op string, err error) error {
	return apperrors.NewCustomError(apperrors.ErrIO, fmt.Sprintf("%s %s: %v", op, kind.FileName(), err))
}

func corruptError(kind Kind, err error) error {
	return apperrors.NewCustomError(apperrors.ErrCorruptData, fmt.Sprintf("parse %s: %v", kind.FileName(), err)).
		WithDetails(map[string]interface{}{"collection": kind.String()})
}
