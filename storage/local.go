package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalBlob writes videos to a directory on the local filesystem. It is the
// fallback used when no bucket is configured, good enough for development but
// not for production.
type LocalBlob struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalBlob ensures the base directory exists and returns the adapter.
func NewLocalBlob(baseDir string, logger *zap.Logger) (*LocalBlob, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve video directory %q: %w", baseDir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create video directory %q: %w", abs, err)
	}
	logger.Info("Local blob store initialized", zap.String("dir", abs))
	return &LocalBlob{baseDir: abs, logger: logger}, nil
}

// Put writes the video bytes to <baseDir>/<key>. The key is flattened to its
// base name so it cannot escape the directory.
func (b *LocalBlob) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path := filepath.Join(b.baseDir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write video file %s: %w", path, err)
	}
	b.logger.Info("Video stored locally", zap.String("path", path), zap.Int("size_bytes", len(data)))
	return nil
}
