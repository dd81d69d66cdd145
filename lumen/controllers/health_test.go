package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	hc := NewHealthController(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()

	hc.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestHealthCheck_Degraded(t *testing.T) {
	hc := NewHealthController(map[string]Check{
		"postgres": func(context.Context) error { return errors.New("down") },
		"minio":    func(context.Context) error { return nil },
	})
	rr := httptest.NewRecorder()
	hc.HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status": "degraded", "failed": ["postgres"]}`, rr.Body.String())
}
