// Package kvtest holds the behaviour every kv.Store backend must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guyfedwards/newsdesk/internal/kv"
)

func Run(t *testing.T, open func(t *testing.T) kv.Store) {
	t.Run("missing key", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "language", "zh"))

		v, err := s.Get(ctx, "language")
		require.NoError(t, err)
		assert.Equal(t, "zh", v)
	})

	t.Run("overwrite", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "admin_mode", "true"))
		require.NoError(t, s.Set(ctx, "admin_mode", "false"))

		v, err := s.Get(ctx, "admin_mode")
		require.NoError(t, err)
		assert.Equal(t, "false", v)
	})

	t.Run("empty value is not missing", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "theme", ""))

		v, err := s.Get(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})
}
