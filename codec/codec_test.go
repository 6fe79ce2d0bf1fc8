package codec_test

import (
	"testing"

	"github.com/davidvella/meld/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Job struct {
	ID       string
	Priority int
	Labels   map[string]string
}

func TestGob(t *testing.T) {
	s := codec.NewGob[Job]()
	job := Job{ID: "j1", Priority: 7, Labels: map[string]string{"team": "infra"}}

	data, err := s.Marshal(job)
	require.NoError(t, err)

	got, err := s.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestGob_Invalid(t *testing.T) {
	s := codec.NewGob[Job]()

	_, err := s.Unmarshal([]byte{0x01, 0x02})
	assert.ErrorContains(t, err, "gob deserialization failed")

	_, err = codec.NewGob[func()]().Marshal(func() {})
	assert.ErrorContains(t, err, "gob serialization failed")
}
