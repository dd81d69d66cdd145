package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumen/lumen/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken("s3cret", 42, time.Now())
	require.NoError(t, err)

	id, err := ParseToken("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = ParseToken("other", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := IssueToken("s3cret", 42, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken("s3cret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.Config{JWTSecret: "s3cret"}
	var gotID int
	h := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Context().Value(UserIDKey).(int)
	}))

	tok, err := IssueToken("s3cret", 7, time.Now())
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + tok, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + tok, http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
	assert.Equal(t, 7, gotID)
}
