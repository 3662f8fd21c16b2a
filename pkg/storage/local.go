package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"p9e.in/ascomp/pkg/metrics"
)

// LocalURLPrefix is where the server exposes the upload directory.
const LocalURLPrefix = "/uploads/"

// LocalStore keeps files under a directory on disk.
type LocalStore struct {
	dir string
}

// NewLocal creates dir if needed.
func NewLocal(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (l *LocalStore) Driver() string { return DriverLocal }

// Dir is the directory files are written to.
func (l *LocalStore) Dir() string { return l.dir }

func (l *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	url, err := l.put(ctx, key, data)
	metrics.RecordStorageWrite(DriverLocal, err)
	return url, err
}

func (l *LocalStore) put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	k, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(l.dir, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return LocalURLPrefix + k, nil
}
