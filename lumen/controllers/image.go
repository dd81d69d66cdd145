package controllers

import (
	"context"
	"path/filepath"
	"strings"

	"lumen/lumen/sources/storage"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/types"

	"go.uber.org/zap"
)

var allowedImageTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ImageAnalyzer is satisfied by *vision.Analyzer.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType, question string) (string, error)
	DefaultQuestion() string
}

type ImageController struct {
	analyzer ImageAnalyzer
	store    storage.UploadStore
	maxBytes int64
}

func NewImageController(a ImageAnalyzer, store storage.UploadStore, maxBytes int64) *ImageController {
	return &ImageController{analyzer: a, store: store, maxBytes: maxBytes}
}

func (c *ImageController) MaxBytes() int64 {
	return c.maxBytes
}

// MimeTypeFor returns the content type for an allowed image filename.
func MimeTypeFor(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	mime, ok := allowedImageTypes[ext]
	return mime, ok
}

// Analyze stages the upload, reads it back for the model and always removes it.
func (c *ImageController) Analyze(ctx context.Context, filename string, data []byte, question string) (*types.ImageAnalysisResponse, error) {
	if filename == "" {
		return nil, ErrNoFileSelected
	}
	mime, ok := MimeTypeFor(filename)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, ErrImageTooLarge
	}
	if strings.TrimSpace(question) == "" {
		question = c.analyzer.DefaultQuestion()
	}

	key, err := c.store.Save(ctx, filename, data, mime)
	if err != nil {
		return nil, err
	}
	defer func() {
		// runs even when the request context is already cancelled
		if err := c.store.Delete(context.WithoutCancel(ctx), key); err != nil {
			logging.ErrorLogger.Error("failed to remove staged upload", zap.String("key", key), zap.Error(err))
		}
	}()

	staged, err := c.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	analysis, err := c.analyzer.Analyze(ctx, staged, mime, question)
	if err != nil {
		return nil, err
	}
	return &types.ImageAnalysisResponse{
		Analysis:       analysis,
		QuestionAsked:  question,
		ImageProcessed: true,
	}, nil
}
