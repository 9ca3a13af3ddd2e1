// Package blob is the object-storage boundary: put bytes under a key,
// get back a public URL, delete by key.
package blob

import "context"

// Store is the blob-storage collaborator the asset library talks to.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
