package pebble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/monitoring"
	"github.com/davidvella/meld/storage"
)

// SnapshotNamespace prefixes every snapshot key.
const SnapshotNamespace = "snapshot"

// StorageOptions configures the underlying Pebble database.
type StorageOptions struct {
	Path         string
	CacheSize    int64
	MaxOpenFiles int
}

var _ storage.Store[int] = (*Storage[int])(nil)

// Storage implements storage.Store using Pebble. Keys are the namespace, a
// NUL separator and the snapshot name; values are encoded snapshots.
type Storage[T any] struct {
	db         *pebble.DB
	serializer codec.Serializer[T]
	opts       storage.Options
}

func NewStorage[T any](opts StorageOptions, s codec.Serializer[T], options ...storage.Option) (*Storage[T], error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, err
	}

	cache := pebble.NewCache(opts.CacheSize)
	defer cache.Unref()

	db, err := pebble.Open(opts.Path, &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: opts.MaxOpenFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", opts.Path, err)
	}

	return &Storage[T]{
		db:         db,
		serializer: s,
		opts:       storage.NewOptions(options...),
	}, nil
}

func (p *Storage[T]) Close() error {
	return p.db.Close()
}

func key(name string) []byte {
	k := make([]byte, 0, len(SnapshotNamespace)+1+len(name))
	k = append(k, SnapshotNamespace...)
	k = append(k, 0)
	return append(k, name...)
}

func (p *Storage[T]) Save(ctx context.Context, name string, h *leftist.Heap[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	data, err := storage.Encode(h, p.serializer)
	if err != nil {
		return err
	}

	if err := p.db.Set(key(name), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}

	p.opts.Logger.Log(ctx, monitoring.DEBUG, "save", "snapshot saved", map[string]interface{}{
		"name":     name,
		"elements": h.Len(),
		"bytes":    len(data),
	})
	return nil
}

func (p *Storage[T]) Load(ctx context.Context, name string, less leftist.Less[T], opts ...leftist.Option) (*leftist.Heap[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	data, closer, err := p.db.Get(key(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}
	defer closer.Close()

	// data is only valid until closer is closed; records are read into fresh buffers.
	return storage.Decode(data, p.serializer, less, opts...)
}

func (p *Storage[T]) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	if err := p.db.Delete(key(name), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", name, err)
	}

	p.opts.Logger.Log(ctx, monitoring.DEBUG, "delete", "snapshot deleted", map[string]interface{}{
		"name": name,
	})
	return nil
}

func (p *Storage[T]) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := key("")
	upper := append([]byte(SnapshotNamespace), 1)

	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upper,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over snapshots: %w", err)
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()[len(prefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return names, nil
}
