package controllers

import (
	"errors"
	"net/http"

	"lumen/lumen/agents/core"
	"lumen/lumen/agents/vision"
)

var (
	ErrNoImage           = errors.New("no image provided")
	ErrNoFileSelected    = errors.New("no file selected")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrImageTooLarge     = errors.New("image exceeds the upload size limit")
)

var publicMessages = map[error]string{
	core.ErrEmptyQuery:   "Empty message",
	ErrNoImage:           "No image provided",
	ErrNoFileSelected:    "No file selected",
	ErrUnsupportedFormat: "Unsupported file format. Use PNG, JPG, JPEG, GIF or WEBP",
	ErrImageTooLarge:     "Image too large",
}

// StatusFor maps a controller or pipeline error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrEmptyQuery),
		errors.Is(err, ErrNoImage),
		errors.Is(err, ErrNoFileSelected),
		errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, vision.ErrEmptyImage),
		errors.Is(err, ErrEmptyUsername):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, vision.ErrAnalysisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicError is the message returned to clients in {"error": ...}.
func PublicError(err error) string {
	for target, msg := range publicMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}
