package storage

import (
	"context"
	"io"
	"time"
)

// SignedURLExpiry is how long read links handed to clients stay valid.
const SignedURLExpiry = time.Hour

// ObjectStore abstracts the media bucket. Paths follow
// option-images/{optionID}/{file} and poll-attachments/{pollID}/{file}.
type ObjectStore interface {
	Save(ctx context.Context, path string, r io.Reader, contentType string) error
	// SignedURL returns a time-limited read URL for the object.
	SignedURL(path string, ttl time.Duration) (string, error)
	// PublicURL returns the unauthenticated URL, used as a fallback when
	// signing is unavailable.
	PublicURL(path string) string
}
