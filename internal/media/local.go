package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidKey is returned for keys escaping the media root.
var ErrInvalidKey = errors.New("invalid media key")

// Local stores files below a directory.
type Local struct {
	root   string
	prefix string
}

// NewLocal returns a Local store writing below root and served at urlPrefix.
func NewLocal(root, urlPrefix string) *Local {
	return &Local{root: root, prefix: urlPrefix}
}

// Root is the directory files are written to.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

// Save implements Store.
func (l *Local) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil { //nolint: mnd
		return fmt.Errorf("media: %w", err)
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640) //nolint: mnd
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)

		return fmt.Errorf("media: write %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("media: %w", err)
	}

	return nil
}

// Delete implements Store.
func (l *Local) Delete(_ context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("media: %w", err)
	}

	return nil
}

// URL implements Store.
func (l *Local) URL(key string) string {
	return joinURL(l.prefix, key)
}
