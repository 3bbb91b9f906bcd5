package rediskv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guyfedwards/newsdesk/internal/kv"
	"github.com/guyfedwards/newsdesk/internal/kv/kvtest"
)

func TestRedisStore(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		mr := miniredis.RunT(t)
		s, err := New(context.Background(), mr.Addr(), "")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := New(context.Background(), "redis://"+mr.Addr()+"/0", "test:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "language", "ko"))

	v, err := mr.Get("test:language")
	require.NoError(t, err)
	assert.Equal(t, "ko", v)
}

func TestRedisStoreUnreachable(t *testing.T) {
	_, err := New(context.Background(), "127.0.0.1:1", "")
	assert.Error(t, err)
}
