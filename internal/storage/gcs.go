package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSBackend stores each key as a JSON object in a Cloud Storage bucket
type GCSBackend struct {
	client     *gcs.Client
	bucketName string
	prefix     string
}

// NewGCSBackend creates a Cloud Storage backend using default credentials.
// STORAGE_EMULATOR_HOST is honored by the client library.
func NewGCSBackend(ctx context.Context, bucketName, prefix string) (*GCSBackend, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return NewGCSBackendWithClient(client, bucketName, prefix), nil
}

// NewGCSBackendWithClient wraps an existing storage client
func NewGCSBackendWithClient(client *gcs.Client, bucketName, prefix string) *GCSBackend {
	return &GCSBackend{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
	}
}

func (g *GCSBackend) objectName(key string) string {
	return g.prefix + key + ".json"
}

func (g *GCSBackend) Get(ctx context.Context, key string) ([]byte, error) {
	obj := g.client.Bucket(g.bucketName).Object(g.objectName(key))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}

	return data, nil
}

func (g *GCSBackend) Set(ctx context.Context, key string, value []byte) error {
	obj := g.client.Bucket(g.bucketName).Object(g.objectName(key))

	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(value); err != nil {
		writer.Close()
		return fmt.Errorf("writing object data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer: %w", err)
	}

	return nil
}

func (g *GCSBackend) Delete(ctx context.Context, key string) error {
	obj := g.client.Bucket(g.bucketName).Object(g.objectName(key))

	if err := obj.Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("deleting object: %w", err)
	}

	return nil
}

// Clear removes every object under the backend's prefix
func (g *GCSBackend) Clear(ctx context.Context) error {
	bucket := g.client.Bucket(g.bucketName)

	it := bucket.Objects(ctx, &gcs.Query{Prefix: g.prefix})

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}

		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
			return fmt.Errorf("deleting object %s: %w", attrs.Name, err)
		}
	}

	return nil
}

// Close closes the Cloud Storage client
func (g *GCSBackend) Close() error {
	return g.client.Close()
}
