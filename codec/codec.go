// Package codec converts heap elements to and from bytes for snapshots.
package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Serializer defines how to serialize/deserialize a single element.
type Serializer[T any] interface {
	Marshal(value T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// Gob implements Serializer using Gob encoding. Each value is encoded on its
// own, so type information is repeated in every record.
type Gob[T any] struct{}

func NewGob[T any]() *Gob[T] {
	return &Gob[T]{}
}

func (s *Gob[T]) Marshal(value T) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("gob serialization failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Gob[T]) Unmarshal(data []byte) (T, error) {
	var value T
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&value); err != nil {
		return value, fmt.Errorf("gob deserialization failed: %w", err)
	}
	return value, nil
}
