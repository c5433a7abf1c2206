// Package storage is the default qr.ImageStore wiring: PNGs written to
// a local directory, served as relative URLs. Real deployments swap in
// the platform's media service behind the same interface.
package storage

import (
	"context"
	"os"
	"path/filepath"
)

type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalImageStore) Put(_ context.Context, name string, png []byte) (string, error) {
	name = filepath.Base(name) // no path traversal via token names
	if err := os.WriteFile(filepath.Join(s.dir, name), png, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}
