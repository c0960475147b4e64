package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// GCSStore stores media objects in a Google Cloud Storage bucket through the
// Firebase Admin SDK.
type GCSStore struct {
	bucketName string
	bucket     *storage.BucketHandle
}

var _ ObjectStore = (*GCSStore)(nil)

// NewGCSStore initializes the bucket handle from a service account key.
func NewGCSStore(ctx context.Context, bucketName string, credentialsJSON []byte) (*GCSStore, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName},
		option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketName, err)
	}

	return &GCSStore{bucketName: bucketName, bucket: bucket}, nil
}

// Save streams the object into the bucket.
func (s *GCSStore) Save(ctx context.Context, path string, r io.Reader, contentType string) error {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %s: %w", path, err)
	}
	return nil
}

// SignedURL returns a time-limited read URL for the object.
func (s *GCSStore) SignedURL(path string, ttl time.Duration) (string, error) {
	url, err := s.bucket.SignedURL(path, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", path, err)
	}
	return url, nil
}

// PublicURL returns the unauthenticated object URL.
func (s *GCSStore) PublicURL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, path)
}
