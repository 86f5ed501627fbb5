// Package archive persists fetched tide data as gzip-compressed artifacts
// on the local filesystem. The existence of an artifact is the sole
// completion marker for a (station, year) key.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// Store writes and inspects artifacts under <base>/stations/<id>/<year>.json.gz.
type Store struct {
	base   string
	logger *zap.Logger
}

// NewStore returns a store rooted at base, creating the stations directory.
func NewStore(base string, logger *zap.Logger) (*Store, error) {
	if base == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Join(base, "stations"), 0o750); err != nil {
		return nil, fmt.Errorf("create archive dir under %s: %w", base, err)
	}
	return &Store{base: base, logger: logger}, nil
}

// Path returns the artifact location for one key.
func (s *Store) Path(stationID string, year int) string {
	return filepath.Join(s.base, "stations", stationID, strconv.Itoa(year)+".json.gz")
}

// Exists reports whether the artifact for the key is already on disk.
func (s *Store) Exists(stationID string, year int) bool {
	_, err := os.Stat(s.Path(stationID, year))
	return err == nil
}

// Put compresses body and writes it to the derived path. On any failure the
// partial file is removed so existence keeps meaning "fetch succeeded".
func (s *Store) Put(ctx context.Context, stationID string, year int, body []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	target := s.Path(stationID, year)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create station dir for %s: %w", target, err)
	}

	if err := s.writeCompressed(target, body); err != nil {
		if rmErr := os.Remove(target); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("remove partial artifact", zap.String("path", target), zap.Error(rmErr))
		}
		return err
	}
	return nil
}

func (s *Store) writeCompressed(target string, body []byte) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304 -- path derived from the store root.
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", target, err)
	}

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(body); err != nil {
		_ = gz.Close()
		_ = f.Close()
		return fmt.Errorf("compress artifact %s: %w", target, err)
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush artifact %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", target, err)
	}
	return nil
}

// Get decompresses the artifact for the key and returns the original body.
func (s *Store) Get(stationID string, year int) ([]byte, error) {
	target := s.Path(stationID, year)
	f, err := os.Open(target) // #nosec G304 -- path derived from the store root.
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", target, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("close artifact", zap.String("path", target), zap.Error(cerr))
		}
	}()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact %s: %w", target, err)
	}
	defer func() {
		if cerr := gz.Close(); cerr != nil {
			s.logger.Warn("close gzip reader", zap.String("path", target), zap.Error(cerr))
		}
	}()

	body, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", target, err)
	}
	return body, nil
}
