package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"packline/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, zerolog.Nop())
	require.NoError(t, err)

	payload := model.RawOrderPayload{
		"data": map[string]any{"orderNumber": float64(20001)},
	}
	w.Write(payload)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "order_")
	assert.Contains(t, entries[0].Name(), ".json")

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var restored model.RawOrderPayload
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, payload, restored)
}

func TestWriter_Write_UniqueFilenames(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, zerolog.Nop())
	require.NoError(t, err)

	payload := model.RawOrderPayload{"data": map[string]any{}}
	w.Write(payload)
	w.Write(payload)
	w.Write(payload)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNewWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")

	_, err := NewWriter(dir, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
