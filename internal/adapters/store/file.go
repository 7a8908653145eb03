package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// FileStore keeps one JSON document per model in a directory
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a file store rooted at dir, creating it if needed
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// Save writes the pipeline to <dir>/<name>.json, replacing it atomically
func (s *FileStore) Save(ctx context.Context, name string, pipeline *core.Pipeline) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := Encode(pipeline)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace model file: %w", err)
	}

	s.logger.Debug("Wrote model file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// Load reads the pipeline stored under name
func (s *FileStore) Load(ctx context.Context, name string) (*core.Pipeline, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return Decode(data)
}

// Delete removes the model file for name
func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// Close releases nothing
func (s *FileStore) Close() error {
	return nil
}

var _ core.ModelRepository = (*FileStore)(nil)
