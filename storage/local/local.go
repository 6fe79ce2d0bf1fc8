package local

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/monitoring"
	"github.com/davidvella/meld/snapshot"
	"github.com/davidvella/meld/storage"
)

// Extension is appended to the name of every snapshot file.
const Extension = ".lhp"

var _ storage.Store[int] = (*Storage[int])(nil)

// Storage keeps one snapshot file per name in a directory. Files are written
// to a temporary name first and renamed into place once complete.
type Storage[T any] struct {
	dir        string
	serializer codec.Serializer[T]
	opts       storage.Options
}

func NewStorage[T any](dir string, s codec.Serializer[T], opts ...storage.Option) (*Storage[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &Storage[T]{
		dir:        dir,
		serializer: s,
		opts:       storage.NewOptions(opts...),
	}, nil
}

func (s *Storage[T]) path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

func (s *Storage[T]) Save(ctx context.Context, name string, h *leftist.Heap[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := s.write(tmp, h)
	if err != nil {
		//nolint:errcheck // best effort cleanup.
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		//nolint:errcheck // best effort cleanup.
		os.Remove(tmpPath)
		return fmt.Errorf("failed to publish snapshot %s: %w", name, err)
	}

	s.opts.Logger.Log(ctx, monitoring.DEBUG, "save", "snapshot saved", map[string]interface{}{
		"name":     name,
		"elements": h.Len(),
		"bytes":    n,
	})
	return nil
}

func (s *Storage[T]) write(f *os.File, h *leftist.Heap[T]) (int64, error) {
	w := bufio.NewWriter(f)
	n, err := snapshot.Write(w, h, s.serializer)
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return n, nil
}

func (s *Storage[T]) Load(ctx context.Context, name string, less leftist.Less[T], opts ...leftist.Option) (*leftist.Heap[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to open snapshot %s: %w", name, err)
	}
	defer f.Close()

	h, err := snapshot.Read(bufio.NewReader(f), s.serializer, less, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return h, nil
}

func (s *Storage[T]) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", name, err)
	}

	s.opts.Logger.Log(ctx, monitoring.DEBUG, "delete", "snapshot deleted", map[string]interface{}{
		"name": name,
	})
	return nil
}

func (s *Storage[T]) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, Extension))
	}
	slices.Sort(names)
	return names, nil
}
