// Package storage reads seed fixtures from a directory tree or an S3 bucket.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Storage is a read-only tree of objects. Paths are slash separated and
// relative to the root of the backend.
type Storage interface {
	// Read returns the object at path, or an error wrapping ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, error)
	// List returns the objects directly under prefix in name order. A
	// missing prefix lists nothing.
	List(ctx context.Context, prefix string) ([]string, error)
}
