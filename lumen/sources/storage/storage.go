package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadStore stages an uploaded file for the length of one request.
type UploadStore interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var ErrInvalidKey = errors.New("invalid upload key")

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SecureFilename strips directories and anything outside [A-Za-z0-9._-].
func SecureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Trim(reUnsafe.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return "upload"
	}
	return name
}

// NewKey builds a collision-free object key for filename.
func NewKey(filename string, now time.Time) string {
	return fmt.Sprintf("%d_%s_%s", now.Unix(), uuid.NewString()[:8], SecureFilename(filename))
}

func validKey(key string) bool {
	return key != "" && key == SecureFilename(key)
}
