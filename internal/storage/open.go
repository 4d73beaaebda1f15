package storage

import (
	"context"
	"fmt"

	"erp-dashboard/internal/config"
	"erp-dashboard/internal/db"
)

// Open builds the Store selected by opts.Driver and applies the configured
// save latency.
func Open(ctx context.Context, opts config.StorageOptions) (Store, error) {
	var (
		store Store
		err   error
	)
	switch opts.Driver {
	case config.DriverMemory:
		store = NewMemoryStore()
	case config.DriverBolt:
		bdb, openErr := db.OpenBolt(opts.BoltPath)
		if openErr != nil {
			return nil, openErr
		}
		store, err = NewBoltStore(bdb)
	case config.DriverPostgres:
		pool, openErr := db.NewPool(ctx, opts.DatabaseURL)
		if openErr != nil {
			return nil, openErr
		}
		store = NewPostgresStore(pool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	return WithLatency(store, opts.SaveLatency), nil
}
