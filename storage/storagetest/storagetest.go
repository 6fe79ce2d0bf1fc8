// Package storagetest holds the behaviour every storage.Store implementation
// is expected to share.
package storagetest

import (
	"context"
	"testing"

	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Job is the element type stored by the suite.
type Job struct {
	ID       string
	Priority int
}

// ByPriority orders jobs so the highest priority pops first.
func ByPriority() leftist.Less[Job] {
	return leftist.Func(func(a, b Job) bool {
		return a.Priority < b.Priority
	})
}

// Run exercises s. It expects s to start empty.
func Run(t *testing.T, s storage.Store[Job]) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		_, err = s.Load(ctx, "missing", ByPriority())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		h := leftist.New(ByPriority())
		for _, j := range []Job{{ID: "a", Priority: 2}, {ID: "b", Priority: 7}, {ID: "c", Priority: 4}} {
			require.NoError(t, h.Push(j))
		}

		require.NoError(t, s.Save(ctx, "jobs", h))
		assert.Equal(t, 3, h.Len())

		got, err := s.Load(ctx, "jobs", ByPriority())
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, drainIDs(t, got))

		// Loading again yields an independent heap.
		again, err := s.Load(ctx, "jobs", ByPriority())
		require.NoError(t, err)
		assert.Equal(t, 3, again.Len())
	})

	t.Run("overwrite", func(t *testing.T) {
		h := leftist.New(ByPriority())
		require.NoError(t, h.Push(Job{ID: "z", Priority: 1}))
		require.NoError(t, s.Save(ctx, "jobs", h))

		got, err := s.Load(ctx, "jobs", ByPriority())
		require.NoError(t, err)
		assert.Equal(t, []string{"z"}, drainIDs(t, got))
	})

	t.Run("empty heap", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "idle", leftist.New(ByPriority())))

		got, err := s.Load(ctx, "idle", ByPriority())
		require.NoError(t, err)
		assert.True(t, got.Empty())
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "backlog", leftist.New(ByPriority())))

		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"backlog", "idle", "jobs"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "idle"))
		require.NoError(t, s.Delete(ctx, "idle"))

		_, err := s.Load(ctx, "idle", ByPriority())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"backlog", "jobs"}, names)
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, name := range []string{"", ".hidden", "a/b", `a\b`, "nul\x00"} {
			err := s.Save(ctx, name, leftist.New(ByPriority()))
			assert.ErrorIs(t, err, storage.ErrInvalidName, "name %q", name)
			assert.ErrorIs(t, s.Delete(ctx, name), storage.ErrInvalidName, "name %q", name)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, s.Save(cctx, "jobs", leftist.New(ByPriority())), context.Canceled)
		_, err := s.Load(cctx, "jobs", ByPriority())
		assert.ErrorIs(t, err, context.Canceled)
		_, err = s.List(cctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, s.Delete(cctx, "jobs"), context.Canceled)
	})
}

func drainIDs(t *testing.T, h *leftist.Heap[Job]) []string {
	t.Helper()
	var ids []string
	for j, err := range h.Drain() {
		require.NoError(t, err)
		ids = append(ids, j.ID)
	}
	return ids
}
