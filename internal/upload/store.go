// Package upload persists multipart file uploads under a local directory.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the route covers are served under. Stored cover values are
// built from it, not from the storage directory, so an absolute upload dir
// never leaks into responses.
const URLPrefix = "uploads"

// Store writes uploaded cover images into a directory. Files keep their
// original extension but get a random name, so a hostile filename never
// reaches the filesystem.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a Store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload: directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory uploads are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the multipart part into the store directory and returns the
// public path to store on the post (e.g. "uploads/3f2a….png"), which is
// what the /uploads route serves.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open multipart file: %w", err)
	}
	defer src.Close()

	name := uuid.NewString()
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != "" {
		name += ext
	}
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("upload: create %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("upload: write %s: %w", dstPath, err)
	}
	return path.Join(URLPrefix, name), nil
}
