package exclusion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExclusionFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "excluded_orders.txt")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestFileLoader_Load(t *testing.T) {
	path := writeExclusionFile(t, "10001\n10376\n\n# staging orders\n10999\n")

	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 3, set.Size())
	assert.True(t, set.Contains(10001))
	assert.True(t, set.Contains(10376))
	assert.True(t, set.Contains(10999))
	assert.False(t, set.Contains(20001))
}

func TestFileLoader_Load_TrimsWhitespace(t *testing.T) {
	path := writeExclusionFile(t, "  10001  \n\t10376\n")

	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 2, set.Size())
	assert.True(t, set.Contains(10001))
}

func TestFileLoader_Load_InvalidLine(t *testing.T) {
	path := writeExclusionFile(t, "10001\nnot-a-number\n")

	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), path)

	require.Error(t, err)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "not an order number")
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Nil(t, set)
}

func TestFileLoader_Load_CancelledContext(t *testing.T) {
	path := writeExclusionFile(t, "10001\n10376\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewFileLoader(zerolog.Nop())
	_, err := loader.Load(ctx, path)

	assert.ErrorIs(t, err, context.Canceled)
}
