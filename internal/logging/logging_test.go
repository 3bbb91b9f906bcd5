package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(false, &buf)
	log.Debug("hidden")
	log.Info("shown", "id", "a1")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "id=a1")

	buf.Reset()
	New(true, &buf).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "newsdesk.log")
	f, err := File(path)
	require.NoError(t, err)
	New(false, f).Info("hello")
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "msg=hello")
}
