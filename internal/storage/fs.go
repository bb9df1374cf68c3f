package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data/materials"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// cleanRef rejects anything that could escape the base directory. Refs come
// from clients, so only a flat file name is accepted.
func cleanRef(ref string) (string, error) {
	ref = filepath.Base(strings.TrimSpace(ref))
	if ref == "" || ref == "." || ref == ".." || ref == string(filepath.Separator) {
		return "", ErrBadRef
	}
	return ref, nil
}

func (s *FSStore) Save(ref string, r io.Reader) (string, error) {
	ref, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	f, err := os.Create(filepath.Join(s.base, ref))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *FSStore) Open(ref string) (io.ReadCloser, error) {
	ref, err := cleanRef(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.base, ref))
}
