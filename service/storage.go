package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage persists uploaded document bytes under a generated object name.
// Delete is idempotent: removing a missing object is not an error.
type FileStorage interface {
	Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Read(ctx context.Context, objectName string) ([]byte, error)
	Delete(ctx context.Context, objectName string) error
}

// LocalStorage stores files on the local filesystem
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	f, err := os.Create(filepath.Join(s.dir, objectName))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Read(_ context.Context, objectName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, objectName))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *LocalStorage) Delete(_ context.Context, objectName string) error {
	err := os.Remove(filepath.Join(s.dir, objectName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
