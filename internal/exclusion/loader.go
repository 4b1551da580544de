package exclusion

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading exclusion lists from the local
// file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based exclusion list loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "exclusion-loader").Logger(),
	}
}

// Load reads an exclusion list file and returns a Set. The file is expected
// to contain one order number per line; blank lines and lines starting with
// '#' are skipped.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Set, error) {
	l.logger.Info().Str("file", filePath).Msg("loading exclusion list")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open exclusion list")
		return nil, fmt.Errorf("failed to open exclusion list %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := readSet(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading exclusion list")
		return nil, fmt.Errorf("error reading exclusion list %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("orders_excluded", set.Size()).
		Msg("exclusion list loaded successfully")

	return set, nil
}

// readSet parses an exclusion list from r, one order number per line.
func readSet(ctx context.Context, r io.Reader) (Set, error) {
	set := NewSet(nil).(*mapSet)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %q is not an order number: %w", line, err)
		}
		set.add(n)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}
