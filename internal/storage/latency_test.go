package storage_test

import (
	"context"
	"testing"
	"time"

	"erp-dashboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLatency_ZeroIsPassthrough(t *testing.T) {
	inner := storage.NewMemoryStore()
	assert.Same(t, inner, storage.WithLatency(inner, 0))
}

func TestWithLatency_DelaysWrites(t *testing.T) {
	ctx := context.Background()
	s := storage.WithLatency(storage.NewMemoryStore(), 20*time.Millisecond)

	start := time.Now()
	require.NoError(t, s.Put(ctx, "k", []byte("[]")))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestWithLatency_CancelledWriteIsDropped(t *testing.T) {
	inner := storage.NewMemoryStore()
	s := storage.WithLatency(inner, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Put(ctx, "k", []byte("[]"))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = inner.Get(context.Background(), "k")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
