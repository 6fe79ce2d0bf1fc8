package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/monitoring"
	"github.com/davidvella/meld/snapshot"
)

var (
	ErrNotFound    = errors.New("snapshot not found")
	ErrInvalidName = errors.New("invalid snapshot name")
)

// Store keeps named heap snapshots.
type Store[T any] interface {
	// Save persists the elements of h under name, replacing any previous
	// snapshot. h is not modified.
	Save(ctx context.Context, name string, h *leftist.Heap[T]) error

	// Load rebuilds the heap saved under name, ordered by less.
	Load(ctx context.Context, name string, less leftist.Less[T], opts ...leftist.Option) (*leftist.Heap[T], error)

	// Delete removes the snapshot saved under name. Deleting a missing
	// snapshot is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all snapshots in ascending order.
	List(ctx context.Context) ([]string, error)
}

// Options configures a store.
type Options struct {
	Logger monitoring.Logger
}

// Option is a function that configures store options.
type Option func(*Options)

// WithLogger sets the logger used for save, load and delete events.
func WithLogger(logger monitoring.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// NewOptions applies opts to the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{Logger: monitoring.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateName rejects names that cannot be used as a key or file name:
// empty names, names starting with a dot and names containing a path
// separator or NUL.
func ValidateName(name string) error {
	switch {
	case name == "", strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a separator", ErrInvalidName, name)
	}
	return nil
}

// Encode serializes h into a snapshot.
func Encode[T any](h *leftist.Heap[T], s codec.Serializer[T]) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := snapshot.Write(&buf, h, s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode rebuilds a heap from a snapshot produced by Encode.
func Decode[T any](data []byte, s codec.Serializer[T], less leftist.Less[T], opts ...leftist.Option) (*leftist.Heap[T], error) {
	h, err := snapshot.Read(bytes.NewReader(data), s, less, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return h, nil
}
