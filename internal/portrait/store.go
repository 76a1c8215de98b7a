package portrait

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore uploads portrait images and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// FilesystemStore implements BlobStore on a local directory served as
// static files.
type FilesystemStore struct {
	dir     string
	baseURL string
}

var _ BlobStore = (*FilesystemStore)(nil)

// NewFilesystemStore creates the directory if needed. baseURL is the public
// prefix the directory is served under, e.g. "/portraits".
func NewFilesystemStore(dir, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create portrait directory: %w", err)
	}
	return &FilesystemStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes the image and returns its public URL.
func (s *FilesystemStore) Put(_ context.Context, name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write portrait: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Dir returns the directory images are written to, for static serving.
func (s *FilesystemStore) Dir() string {
	return s.dir
}
