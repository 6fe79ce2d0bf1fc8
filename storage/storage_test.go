package storage_test

import (
	"testing"

	"github.com/davidvella/meld/codec"
	"github.com/davidvella/meld/leftist"
	"github.com/davidvella/meld/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "jobs"},
		{name: "jobs.v2"},
		{name: "with space"},
		{name: "", wantErr: true},
		{name: ".", wantErr: true},
		{name: "..", wantErr: true},
		{name: ".hidden", wantErr: true},
		{name: "a/b", wantErr: true},
		{name: `a\b`, wantErr: true},
		{name: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storage.ValidateName(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, storage.ErrInvalidName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	h := leftist.New(leftist.Reverse(leftist.Ordered[string]()))
	for _, v := range []string{"m", "c", "x", "a"} {
		require.NoError(t, h.Push(v))
	}

	data, err := storage.Encode(h, codec.NewGob[string]())
	require.NoError(t, err)

	got, err := storage.Decode(data, codec.NewGob[string](), leftist.Reverse(leftist.Ordered[string]()))
	require.NoError(t, err)

	top, err := got.Top()
	require.NoError(t, err)
	assert.Equal(t, "a", top)
	assert.Equal(t, 4, got.Len())

	_, err = storage.Decode([]byte("junk"), codec.NewGob[string](), leftist.Ordered[string]())
	assert.ErrorContains(t, err, "failed to decode snapshot")
}
