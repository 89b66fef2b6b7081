package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keeps node content on a local write-once directory. Paths are
// freshly generated uuids, so two concurrent saves never race on the
// same file.
type Store struct {
	log *zap.Logger
	dir string
}

func New(logger *zap.Logger, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage folder %s: %w", dir, err)
	}

	logger.Info("content store ready", zap.String("folder", dir))

	return &Store{log: logger, dir: dir}, nil
}

func (s *Store) Save(_ context.Context, data []byte) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write content %s: %w", path, err)
	}
	return path, nil
}

// SaveAt overwrites in place; derivative regeneration is idempotent.
func (s *Store) SaveAt(_ context.Context, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write content %s: %w", path, err)
	}
	return nil
}

func (s *Store) Load(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// keeps os.ErrNotExist visible to errors.Is
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return data, nil
}

// DerivativePath names the resized rendering of path at width.
func DerivativePath(path string, width int) string {
	return fmt.Sprintf("%s_%d", path, width)
}
