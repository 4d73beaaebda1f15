package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Document is a single JSON object stored under one key.
type Document[T any] struct {
	key    string
	store  Store
	logger logrus.FieldLogger
}

func NewDocument[T any](store Store, key string, logger logrus.FieldLogger) *Document[T] {
	return &Document[T]{key: key, store: store, logger: logger}
}

func (d *Document[T]) Key() string { return d.key }

// Get returns ErrNotFound when the slot is empty and ErrCorrupt when it does
// not decode.
func (d *Document[T]) Get(ctx context.Context) (T, error) {
	var v T
	raw, err := d.store.Get(ctx, d.key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrCorrupt, d.key, err)
	}
	return v, nil
}

func (d *Document[T]) Put(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}
	return d.store.Put(ctx, d.key, data)
}

func (d *Document[T]) Delete(ctx context.Context) error {
	return d.store.Delete(ctx, d.key)
}

// LoadOr returns the stored value, or writes seed() back and returns it
// when the slot is absent or corrupt.
func (d *Document[T]) LoadOr(ctx context.Context, seed func() T) (T, error) {
	v, err := d.Get(ctx)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, ErrCorrupt):
		d.logger.WithFields(logrus.Fields{"key": d.key, "error": err}).Warn("stored document is unreadable, restoring default")
	case !errors.Is(err, ErrNotFound):
		return v, err
	}
	v = seed()
	if err := d.Put(ctx, v); err != nil {
		return v, err
	}
	return v, nil
}
