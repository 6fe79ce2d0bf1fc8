package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/recordio"
	"github.com/davidvella/meld/storage/local"
	"github.com/davidvella/meld/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	s, err := local.NewStorage[storagetest.Job](t.TempDir(), codec.NewGob[storagetest.Job]())
	require.NoError(t, err)
	storagetest.Run(t, s)
}

func TestStorage_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := local.NewStorage[int](dir, codec.NewGob[int]())
	require.NoError(t, err)

	h := leftist.New(leftist.Ordered[int]())
	require.NoError(t, h.Push(42))
	require.NoError(t, s.Save(context.Background(), "answers", h))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "answers"+local.Extension, entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, recordio.MagicBytes, data[:len(recordio.MagicBytes)])

	// Unrelated files are not listed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".partial-1.tmp"), []byte("x"), 0o600))
	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"answers"}, names)
}

func TestStorage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := local.NewStorage[int](dir, codec.NewGob[int]())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken"+local.Extension), []byte("garbage"), 0o600))

	_, err = s.Load(context.Background(), "broken", leftist.Ordered[int]())
	assert.ErrorIs(t, err, recordio.ErrInvalidMagicBytes)
}
