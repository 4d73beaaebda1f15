package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Collection is an array of records stored as one JSON document under a
// fixed key. Writes always replace the whole array.
//
// All access goes through one mutex, so a Collection is the single writer
// for its key within the process. Two processes sharing a store still race
// and the last write wins.
type Collection[T any] struct {
	key    string
	store  Store
	seed   func() []T
	logger logrus.FieldLogger
	onSeed func(key string)

	mu sync.Mutex
}

// NewCollection binds key in store. seed must return a fresh slice on every
// call; it is written back whenever the slot is absent or undecodable.
func NewCollection[T any](store Store, key string, seed func() []T, logger logrus.FieldLogger) *Collection[T] {
	if seed == nil {
		seed = func() []T { return []T{} }
	}
	return &Collection[T]{key: key, store: store, seed: seed, logger: logger}
}

func (c *Collection[T]) Key() string { return c.key }

// OnSeed registers fn to run after the seed has been written to the slot.
func (c *Collection[T]) OnSeed(fn func(key string)) *Collection[T] {
	c.onSeed = fn
	return c
}

// Load returns the stored records, restoring the seed first if needed.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save overwrites the slot with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update loads the records, passes them to fn and saves what fn returns.
// If fn fails nothing is written and its error is returned unchanged.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(records)
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset overwrites the slot with the seed and returns it.
func (c *Collection[T]) Reset(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restore(ctx)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return c.restore(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil || records == nil {
		c.logger.WithFields(logrus.Fields{
			"collection": c.key,
			"error":      err,
		}).Warn("stored collection is unreadable, restoring seed")
		return c.restore(ctx)
	}
	return records, nil
}

func (c *Collection[T]) restore(ctx context.Context) ([]T, error) {
	seed := c.seed()
	if seed == nil {
		seed = []T{}
	}
	if err := c.save(ctx, seed); err != nil {
		return nil, err
	}
	if c.onSeed != nil {
		c.onSeed(c.key)
	}
	return seed, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
