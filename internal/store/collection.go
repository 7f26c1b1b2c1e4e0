package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is the typed view of one kind. T must round-trip through
// encoding/json.
type Collection[T any] struct {
	db   *DB
	kind Kind
}

// NewCollection binds a record type to a kind.
func NewCollection[T any](db *DB, kind Kind) *Collection[T] {
	return &Collection[T]{db: db, kind: kind}
}

// Kind returns the collection kind.
func (c *Collection[T]) Kind() Kind {
	return c.kind
}

// NextID returns a fresh document id from the owning store.
func (c *Collection[T]) NextID() string {
	return c.db.NextID()
}

// LoadAll returns the whole collection in stored order. A collection that
// was never written is empty.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	data, err := c.db.readRaw(ctx, c.kind)
	if err != nil {
		return nil, err
	}
	return c.decode(data)
}

// ReplaceAll atomically swaps the collection for records.
func (c *Collection[T]) ReplaceAll(ctx context.Context, records []T) error {
	unlock := c.db.lock(c.kind)
	defer unlock()
	return c.replace(ctx, records)
}

// Update runs a read-modify-write sequence while holding the collection
// lock. fn receives the current records and returns the records to persist.
// If fn returns an error nothing is written and the error is returned as is.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	unlock := c.db.lock(c.kind)
	defer unlock()

	records, err := c.LoadAll(ctx)
	if err != nil {
		return err
	}
	if c.db.afterLoad != nil {
		c.db.afterLoad(c.kind)
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.replace(ctx, next)
}

func (c *Collection[T]) replace(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.kind, err)
	}
	return c.db.write(ctx, c.kind, append(data, '\n'))
}

func (c *Collection[T]) decode(data []byte) ([]T, error) {
	if data == nil {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, corruptError(c.kind, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
