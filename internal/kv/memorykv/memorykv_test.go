package memorykv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guyfedwards/newsdesk/internal/kv"
	"github.com/guyfedwards/newsdesk/internal/kv/kvtest"
)

func TestMemoryStore(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		return New()
	})
}

func TestWrites(t *testing.T) {
	m := New()
	_ = m.Set(context.Background(), "a", "1")
	_ = m.Set(context.Background(), "a", "2")
	assert.Equal(t, 2, m.Writes())
}
