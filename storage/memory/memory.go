package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/monitoring"
	"github.com/davidvella/meld/storage"
	"github.com/google/btree"
)

type entry struct {
	name string
	data []byte
}

var _ storage.Store[int] = (*Storage[int])(nil)

// Storage keeps encoded snapshots in an in-memory btree ordered by name.
type Storage[T any] struct {
	mu         sync.RWMutex
	snapshots  *btree.BTreeG[entry]
	serializer codec.Serializer[T]
	opts       storage.Options
}

func NewStorage[T any](s codec.Serializer[T], opts ...storage.Option) *Storage[T] {
	return &Storage[T]{
		snapshots: btree.NewG[entry](2, func(a, b entry) bool {
			return a.name < b.name
		}),
		serializer: s,
		opts:       storage.NewOptions(opts...),
	}
}

func (m *Storage[T]) Save(ctx context.Context, name string, h *leftist.Heap[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	data, err := storage.Encode(h, m.serializer)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.snapshots.ReplaceOrInsert(entry{name: name, data: data})
	m.mu.Unlock()

	m.opts.Logger.Log(ctx, monitoring.DEBUG, "save", "snapshot saved", map[string]interface{}{
		"name":     name,
		"elements": h.Len(),
		"bytes":    len(data),
	})
	return nil
}

func (m *Storage[T]) Load(ctx context.Context, name string, less leftist.Less[T], opts ...leftist.Option) (*leftist.Heap[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	e, ok := m.snapshots.Get(entry{name: name})
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, name)
	}

	return storage.Decode(e.data, m.serializer, less, opts...)
}

func (m *Storage[T]) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	m.mu.Lock()
	_, existed := m.snapshots.Delete(entry{name: name})
	m.mu.Unlock()

	if existed {
		m.opts.Logger.Log(ctx, monitoring.DEBUG, "delete", "snapshot deleted", map[string]interface{}{
			"name": name,
		})
	}
	return nil
}

func (m *Storage[T]) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, m.snapshots.Len())
	m.snapshots.Ascend(func(e entry) bool {
		names = append(names, e.name)
		return true
	})
	return names, nil
}
