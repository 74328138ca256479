package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aporte-capital/consultoria-service/internal/configuration"
)

// Storage is the contract every attachment backend implements. Object names
// are opaque keys chosen by the caller (uuid + extension in practice).
type Storage interface {
	Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, objectName string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, objectName string) error
}

// New selects the backend configured by STORAGE_BACKEND. Local disk is the
// default; "minio" switches to the object store.
func New(cfg *configuration.Config) (Storage, error) {
	switch cfg.Upload.Backend {
	case "", "local":
		return NewLocal(cfg.Upload.Dir)
	case "minio":
		return NewMinio(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Upload.Backend)
	}
}
