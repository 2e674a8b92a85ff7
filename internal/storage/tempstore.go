package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TempStore keeps uploads on local disk for the lifetime of one request.
type TempStore struct {
	dir string
}

// NewTempStore creates dir if needed and returns a store rooted there.
func NewTempStore(dir string) (*TempStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &TempStore{dir: dir}, nil
}

func (s *TempStore) Dir() string {
	return s.dir
}

// Save copies r into a new uniquely named file and returns its path. The
// extension of fileName is kept; the rest of the name is never used.
func (s *TempStore) Save(r io.Reader, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || len(ext) > 8 {
		ext = ".pdf"
	}
	path := filepath.Join(s.dir, uuid.NewString()+ext)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path, nil
}

func (s *TempStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Remove deletes a stored file. Removing a file that is already gone is not an error.
func (s *TempStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
