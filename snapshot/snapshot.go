// Package snapshot writes the elements of a leftist heap to a stream and
// rebuilds heaps from such streams, using the recordio framing.
package snapshot

import (
	"fmt"
	"io"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/recordio"
)

// Write stores every element of h in w and returns the number of bytes
// written. The heap is not modified; elements are written in tree order,
// not priority order.
func Write[T any](w io.Writer, h *leftist.Heap[T], s codec.Serializer[T]) (int64, error) {
	total, err := recordio.WriteHeader(w, int64(h.Len()))
	if err != nil {
		return total, err
	}

	written := 0
	for v := range h.Values() {
		data, err := s.Marshal(v)
		if err != nil {
			return total, fmt.Errorf("failed to serialize element %d: %w", written, err)
		}

		n, err := recordio.WriteRecord(w, data)
		total += n
		if err != nil {
			return total, err
		}
		written++
	}

	return total, nil
}

// Read decodes a snapshot and builds a heap ordered by less. Either the
// whole snapshot is loaded or an error is returned.
func Read[T any](r io.Reader, s codec.Serializer[T], less leftist.Less[T], opts ...leftist.Option) (*leftist.Heap[T], error) {
	var values []T
	for data, err := range recordio.Seq(r) {
		if err != nil {
			return nil, err
		}

		v, err := s.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize element %d: %w", len(values), err)
		}
		values = append(values, v)
	}

	return leftist.Build(less, values, opts...)
}
