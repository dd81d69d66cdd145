package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskStore keeps uploads under a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (d *DiskStore) Save(_ context.Context, filename string, data []byte, _ string) (string, error) {
	key := NewKey(filename, time.Now())
	if err := os.WriteFile(filepath.Join(d.dir, key), data, 0o600); err != nil {
		return "", err
	}
	return key, nil
}

func (d *DiskStore) Load(_ context.Context, key string) ([]byte, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	return os.ReadFile(filepath.Join(d.dir, key))
}

func (d *DiskStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := os.Remove(filepath.Join(d.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
