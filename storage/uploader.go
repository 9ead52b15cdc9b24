package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Location is the public URL the
// bucket serves it from.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader is the object-store surface the game service needs for cover
// images: put, remove, and resolve a key to its public URL.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
