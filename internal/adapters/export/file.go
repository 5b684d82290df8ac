package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tagmanager/internal/ports"
)

// FileSink writes export bundles below a local directory
type FileSink struct {
	dir string
}

var _ ports.ExportSink = (*FileSink)(nil)

// NewFileSink creates a sink writing into dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Write stores data at dir/name, creating parent directories as needed
func (s *FileSink) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
