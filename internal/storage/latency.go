package storage

import (
	"context"
	"time"
)

type latencyStore struct {
	Store
	delay time.Duration
}

// WithLatency delays every Put and Delete by d before forwarding it. The
// wait is abandoned, and nothing is written, if ctx ends first. A
// non-positive d returns inner unchanged.
func WithLatency(inner Store, d time.Duration) Store {
	if d <= 0 {
		return inner
	}
	return &latencyStore{Store: inner, delay: d}
}

func (l *latencyStore) wait(ctx context.Context) error {
	t := time.NewTimer(l.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *latencyStore) Put(ctx context.Context, key string, value []byte) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.Store.Put(ctx, key, value)
}

func (l *latencyStore) Delete(ctx context.Context, key string) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.Store.Delete(ctx, key)
}
