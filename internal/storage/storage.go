package storage

import (
	"context"
	"io"
)

// Store persists uploaded plan and facade images and hands back the URL the
// frontend embeds. Implementations: S3-compatible object storage for
// deployments, the local uploads directory for development.
type Store interface {
	Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
