// Package upload stores uploaded item images on disk and hands back the
// public URL they're served under.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/erazemk/zelje/internal/imaging"
)

// MaxSize is the upload size ceiling.
const MaxSize = 5 << 20

// URLPrefix is the path uploaded files are served under.
const URLPrefix = "/uploads"

// Store writes processed images into a directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a store for it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory uploads are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and processes the image and writes it to disk under a
// random name. Returns the public URL for the stored file.
func (s *Store) Save(r io.Reader) (string, error) {
	result, err := imaging.Process(r)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, name), result.Data, 0644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return URLPrefix + "/" + name, nil
}
