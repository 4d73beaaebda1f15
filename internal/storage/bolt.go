package storage

import (
	"bytes"
	"context"
	"slices"

	"go.etcd.io/bbolt"
)

const boltBucketSlots = "slots" // key: slot name -> JSON document

// BoltStore keeps every slot in one bbolt bucket. Each Put is its own
// write transaction, so a slot is either fully replaced or untouched.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore takes ownership of db and ensures the slots bucket exists.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSlots))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketSlots)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction.
		out = slices.Clone(v)
		return nil
	})
	return out, err
}

func (b *BoltStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).Put([]byte(key), value)
	})
}

func (b *BoltStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).Delete([]byte(key))
	})
}

func (b *BoltStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys := []string{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(boltBucketSlots)).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
