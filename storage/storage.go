// Package storage archives rendered exports on the local filesystem or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"guidedigest-backend/config"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("stored file not found")
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage is a flat object store for exported documents
type Storage interface {
	// Save stores data under a path derived from ownerID and filename and returns that path
	Save(ctx context.Context, ownerID uuid.UUID, filename string, data io.Reader) (string, error)

	// Open retrieves a file by storage path
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a file by storage path
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates the backend selected by cfg.Type
func NewStorage(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case config.StorageTypeLocal:
		store, err := NewLocalStorage(cfg.LocalPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageTypeS3:
		store, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// generateStoragePath lays files out as <yyyy-mm-dd>/<owner>/<unix>_<name>.
func generateStoragePath(ownerID uuid.UUID, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filepath.Base(filename), ext)
	baseName = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, baseName)
	if baseName == "" {
		baseName = "export"
	}

	return fmt.Sprintf("%s/%s/%d_%s%s", now.UTC().Format("2006-01-02"), ownerID.String(), now.UnixNano(), baseName, ext)
}

// CleanPath validates a client-supplied storage path. Absolute paths and
// parent references are rejected.
func CleanPath(p string) (string, error) {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// ContentType determines content type from filename
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
