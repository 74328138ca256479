package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on a directory of the local filesystem.
type LocalStorage struct {
	dir string
}

func NewLocal(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (l *LocalStorage) Save(_ context.Context, objectName string, r io.Reader, _ int64, _ string) error {
	dst, err := os.Create(l.path(objectName))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (l *LocalStorage) Open(_ context.Context, objectName string) (io.ReadCloser, int64, error) {
	f, err := os.Open(l.path(objectName))
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (l *LocalStorage) Delete(_ context.Context, objectName string) error {
	return os.Remove(l.path(objectName))
}

// path keeps object names inside the upload directory; anything carrying
// separators is flattened to its base name.
func (l *LocalStorage) path(objectName string) string {
	return filepath.Join(l.dir, filepath.Base(strings.ReplaceAll(objectName, "\\", "/")))
}
