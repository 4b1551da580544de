// Package backup writes raw webhook payloads to disk so deliveries can be
// replayed after a pipeline bug. Writes are fire-and-forget: a failed backup
// is logged and never blocks or fails order processing.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"packline/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Writer persists raw payloads as JSON files in a directory.
type Writer struct {
	dir    string
	logger zerolog.Logger
}

// NewWriter creates a backup writer rooted at dir, creating it if needed.
func NewWriter(dir string, logger zerolog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}

	return &Writer{
		dir:    dir,
		logger: logger.With().Str("component", "backup").Logger(),
	}, nil
}

// Write stores one payload under a timestamped, uuid-suffixed filename.
// Errors are logged, not returned; callers treat backups as best effort.
func (w *Writer) Write(payload model.RawOrderPayload) {
	name := fmt.Sprintf("order_%s_%s.json",
		time.Now().UTC().Format("20060102T150405"),
		uuid.New().String(),
	)
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to marshal payload for backup")
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("failed to write payload backup")
		return
	}

	w.logger.Debug().Str("path", path).Msg("payload backup written")
}
