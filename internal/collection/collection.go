// Package collection keeps the local copy of one remote entity collection.
package collection

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Identified is implemented by every record held in a collection.
type Identified interface {
	GetID() int64
}

// Lister fetches a full collection from the server.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Collection is a cache of server state: replaced wholesale on load and
// patched locally after a successful delete.
type Collection[T Identified] struct {
	items []T
}

func New[T Identified](items ...T) *Collection[T] {
	return &Collection[T]{items: items}
}

// Load replaces the contents with a single fetch of the collection. On
// failure the collection is left empty and the error is returned for the
// caller to report. There is no retry.
func (c *Collection[T]) Load(ctx context.Context, src Lister[T], log zerolog.Logger) error {
	items, err := src.List(ctx)
	if err != nil {
		c.items = nil
		log.Error().Err(err).Msg("failed to load collection")
		return err
	}
	c.items = items
	return nil
}

// Items returns the records in server order. The slice must not be modified.
func (c *Collection[T]) Items() []T {
	return c.items
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(id int64) (T, bool) {
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Remove drops exactly one record matching id and keeps the order of the
// others. It reports whether a record was removed.
func (c *Collection[T]) Remove(id int64) bool {
	for i, item := range c.items {
		if item.GetID() == id {
			next := make([]T, 0, len(c.items)-1)
			next = append(next, c.items[:i]...)
			c.items = append(next, c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.items)
}
