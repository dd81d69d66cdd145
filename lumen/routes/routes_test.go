package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lumen/lumen/agents/core"
	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/sources/storage"
	"lumen/lumen/utils/types"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerer struct{}

func (fakeAnswerer) RunWithProgress(_ context.Context, query string, progress core.ProgressFunc) (*core.PipelineResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	if progress != nil {
		progress(core.StepDeciding, "")
		progress(core.StepDone, "")
	}
	return &core.PipelineResult{Answer: "echo: " + query, Sources: []core.Source{}}, nil
}

type fakeAnalyzer struct{}

func (fakeAnalyzer) Analyze(_ context.Context, image []byte, mimeType, question string) (string, error) {
	return mimeType + " " + question, nil
}

func (fakeAnalyzer) DefaultQuestion() string { return "Describe this image in detail." }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	cfg := config.Config{LLMTimeout: time.Second}
	h := NewRouter(cfg, Controllers{
		Chat:   controllers.NewChatController(fakeAnswerer{}),
		Image:  controllers.NewImageController(fakeAnalyzer{}, store, 64),
		Health: controllers.NewHealthController(nil),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestChatRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postJSON(t, srv.URL+"/api/chat", `{"message": "Hello, how are you?"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "echo: Hello, how are you?", out["response"])
	assert.Equal(t, []any{}, out["sources"])
	assert.Nil(t, out["search_query_used"])
	assert.Contains(t, out, "search_query_used")
	assert.Equal(t, false, out["web_search_performed"])
}

func TestChatRoute_EmptyMessage(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postJSON(t, srv.URL+"/api/chat", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Empty message"}, out)

	resp, _ = postJSON(t, srv.URL+"/api/chat", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatWebsocket(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, wsjson.Write(ctx, conn, types.ChatRequest{Message: "hi"}))

	var events []types.StreamEvent
	for {
		var ev types.StreamEvent
		require.NoError(t, wsjson.Read(ctx, conn, &ev))
		events = append(events, ev)
		if ev.Type != "step" {
			break
		}
	}
	require.Len(t, events, 3)
	assert.Equal(t, "deciding", events[0].Step)
	assert.Equal(t, "result", events[2].Type)
	assert.Equal(t, "echo: hi", events[2].Payload.Response)
	assert.NotEmpty(t, events[2].SessionID)
}

func multipartBody(t *testing.T, filename string, data []byte, question string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		fw.Write(data)
	}
	if question != "" {
		require.NoError(t, mw.WriteField("question", question))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImageRoute(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartBody(t, "cat.jpg", []byte("jpegdata"), "")
	resp, err := http.Post(srv.URL+"/api/analyze-image", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out types.ImageAnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "image/jpeg Describe this image in detail.", out.Analysis)
	assert.Equal(t, "Describe this image in detail.", out.QuestionAsked)
	assert.True(t, out.ImageProcessed)
}

func TestImageRoute_Errors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name     string
		filename string
		data     []byte
		status   int
	}{
		{"missing image", "", nil, http.StatusBadRequest},
		{"bad extension", "notes.txt", []byte("x"), http.StatusBadRequest},
		{"too large", "big.png", bytes.Repeat([]byte("x"), 100), http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.filename, tc.data, "q")
			resp, err := http.Post(srv.URL+"/api/analyze-image", ct, body)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAccountRoutesAbsentWithoutAuth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", strings.NewReader(`{"username":"a"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
