package domain

import (
	"context"
	"io"
)

// StorageRepo is the external object-storage collaborator holding avatar and
// cover assets. Upload returns the public URL for the stored object; Delete
// takes that URL back.
type StorageRepo interface {
	Upload(ctx context.Context, fileReader io.Reader, key string) (url string, err error)
	Delete(ctx context.Context, url string) error
}
