package snapshot_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/recordio"
	"github.com/davidvella/meld/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Job struct {
	ID       string
	Priority int
}

func byPriority() leftist.Less[Job] {
	return leftist.Func(func(a, b Job) bool { return a.Priority < b.Priority })
}

func TestRoundTrip(t *testing.T) {
	h := leftist.New(byPriority())
	jobs := []Job{{"a", 3}, {"b", 9}, {"c", 1}, {"d", 5}, {"e", 9}}
	for _, j := range jobs {
		require.NoError(t, h.Push(j))
	}

	var buf bytes.Buffer
	n, err := snapshot.Write(&buf, h, codec.NewGob[Job]())
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, len(jobs), h.Len())

	got, err := snapshot.Read(&buf, codec.NewGob[Job](), byPriority())
	require.NoError(t, err)
	require.Equal(t, h.Len(), got.Len())

	for !h.Empty() {
		want, err := h.Pop()
		require.NoError(t, err)
		have, err := got.Pop()
		require.NoError(t, err)
		assert.Equal(t, want.Priority, have.Priority)
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	var buf bytes.Buffer
	_, err := snapshot.Write(&buf, leftist.New(leftist.Ordered[int]()), codec.NewGob[int]())
	require.NoError(t, err)
	assert.Equal(t, recordio.HeaderSize, int64(buf.Len()))

	got, err := snapshot.Read(&buf, codec.NewGob[int](), leftist.Ordered[int]())
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

type failingSerializer struct {
	err error
}

func (f failingSerializer) Marshal(int) ([]byte, error) { return nil, f.err }

func (f failingSerializer) Unmarshal([]byte) (int, error) { return 0, f.err }

func TestWrite_SerializerError(t *testing.T) {
	errEncode := errors.New("encode")
	h := leftist.New(leftist.Ordered[int]())
	require.NoError(t, h.Push(1))

	var buf bytes.Buffer
	_, err := snapshot.Write(&buf, h, failingSerializer{err: errEncode})
	assert.ErrorIs(t, err, errEncode)
}

func TestRead_Errors(t *testing.T) {
	h := leftist.New(leftist.Ordered[int]())
	for _, v := range []int{4, 8, 15, 16} {
		require.NoError(t, h.Push(v))
	}
	var buf bytes.Buffer
	_, err := snapshot.Write(&buf, h, codec.NewGob[int]())
	require.NoError(t, err)
	data := buf.Bytes()

	t.Run("truncated", func(t *testing.T) {
		_, err := snapshot.Read(bytes.NewReader(data[:len(data)-3]), codec.NewGob[int](), leftist.Ordered[int]())
		assert.ErrorIs(t, err, recordio.ErrTruncated)
	})

	t.Run("decode failure", func(t *testing.T) {
		errDecode := errors.New("decode")
		_, err := snapshot.Read(bytes.NewReader(data), failingSerializer{err: errDecode}, leftist.Ordered[int]())
		assert.ErrorIs(t, err, errDecode)
	})

	t.Run("comparator failure", func(t *testing.T) {
		errCmp := errors.New("cmp")
		h, err := snapshot.Read(bytes.NewReader(data), codec.NewGob[int](), func(a, b int) (bool, error) {
			return false, errCmp
		})
		assert.Nil(t, h)
		assert.ErrorIs(t, err, leftist.ErrComparator)
		assert.ErrorIs(t, err, errCmp)
	})
}
