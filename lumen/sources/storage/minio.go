package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"lumen/lumen/config"
	"lumen/lumen/utils/logging"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const uploadPrefix = "uploads"

// MinIOStore stages uploads as objects in a bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

func NewMinIOStore(ctx context.Context, cfg config.Config) (*MinIOStore, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	logging.AppLogger.Info("minio upload store ready", zap.String("endpoint", cfg.MinIOEndpoint), zap.String("bucket", bucket))
	return &MinIOStore{client: client, bucket: bucket}, nil
}

func (m *MinIOStore) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	key := NewKey(filename, time.Now())
	_, err := m.client.PutObject(ctx, m.bucket, path.Join(uploadPrefix, key),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (m *MinIOStore) Load(ctx context.Context, key string) ([]byte, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	obj, err := m.client.GetObject(ctx, m.bucket, path.Join(uploadPrefix, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (m *MinIOStore) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	return m.client.RemoveObject(ctx, m.bucket, path.Join(uploadPrefix, key), minio.RemoveObjectOptions{})
}

// Ping reports whether the bucket is still reachable.
func (m *MinIOStore) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q missing", m.bucket)
	}
	return nil
}
