package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"p9e.in/ascomp/pkg/metrics"
)

// GCSStore writes objects to a Google Cloud Storage bucket using the
// application default credentials.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs storage needs STORAGE_BUCKET")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (g *GCSStore) Driver() string { return DriverGCS }

func (g *GCSStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	url, err := g.put(ctx, key, contentType, data)
	metrics.RecordStorageWrite(DriverGCS, err)
	return url, err
}

func (g *GCSStore) put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	k, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	w := g.client.Bucket(g.bucket).Object(k).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", k, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", k, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, k), nil
}

// Close releases the client.
func (g *GCSStore) Close() error {
	return g.client.Close()
}
