package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when the remote side answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status: %s", e.Status)
	}
	return fmt.Sprintf("bad status: %s - %s", e.Status, e.Body)
}

const maxErrorBody = 2048

// PostJSON posts body as JSON and decodes the answer into resp (when non-nil).
func PostJSON(ctx context.Context, client *http.Client, url string, body interface{}, resp interface{}) error {
	return PostJSONWithHeaders(ctx, client, url, nil, body, resp)
}

// PostJSONWithAuth is PostJSON plus a bearer token.
func PostJSONWithAuth(ctx context.Context, client *http.Client, url, apiKey string, body interface{}, resp interface{}) error {
	headers := map[string]string{}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	return PostJSONWithHeaders(ctx, client, url, headers, body, resp)
}

func PostJSONWithHeaders(ctx context.Context, client *http.Client, url string, headers map[string]string, body interface{}, resp interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return Do(client, req, resp)
}

// GetJSON issues a GET with the given headers and decodes the JSON answer.
func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, resp interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return Do(client, req, resp)
}

// Do sends req and decodes a JSON body into resp, mapping non-2xx to *StatusError.
func Do(client *http.Client, req *http.Request, resp interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}
	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
		return &StatusError{StatusCode: r.StatusCode, Status: r.Status, Body: string(b)}
	}
	if resp != nil {
		if err := json.NewDecoder(r.Body).Decode(resp); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
