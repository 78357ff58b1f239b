// Package media stores uploaded recipe images on disk or in an s3 compatible bucket.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db/models"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown media backend")

// Store keeps uploaded files under object keys.
type Store interface {
	// Save stores size bytes from r under key.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}

// ObjectKey returns a fresh key below the recipe image prefix.
func ObjectKey(ext string) string {
	return models.ImagePrefix + uuid.NewString() + ext
}

// New returns the configured store.
func New(ctx context.Context, cfg config.Media) (Store, error) {
	switch cfg.Backend {
	case config.MediaLocal, "":
		return NewLocal(cfg.Root, cfg.URLPrefix), nil
	case config.MediaS3:
		return NewS3(ctx, cfg)
	case config.MediaMinio:
		return NewMinio(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
