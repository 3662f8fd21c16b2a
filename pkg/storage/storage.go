// Package storage saves uploaded files and rendered artifacts. Local disk
// is used in development; Google Cloud Storage or any S3-compatible store
// in production.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Drivers.
const (
	DriverLocal = "local"
	DriverGCS   = "gcs"
	DriverS3    = "s3"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	// ErrInvalidKey is returned for keys that would escape the store's root.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store writes one object and returns the URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Driver() string
}

// Config selects and configures a Store.
type Config struct {
	Driver      string `yaml:"driver"`
	Dir         string `yaml:"dir"`
	Bucket      string `yaml:"bucket"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3Region    string `yaml:"s3_region"`
	S3AccessKey string `yaml:"s3_access_key_id"`
	S3SecretKey string `yaml:"s3_secret_access_key"`
}

// New builds the store named by cfg.Driver. An empty driver means local.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocal(cfg.Dir)
	case DriverGCS:
		return NewGCS(ctx, cfg.Bucket)
	case DriverS3:
		return NewS3(ctx, cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// CleanKey normalises key to a relative slash path and rejects keys that
// are empty or climb out of the root.
func CleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.HasPrefix(key, "..") || strings.Contains(key, "/../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return k, nil
}
