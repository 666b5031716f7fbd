package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// Client wraps http.Client with test-friendly methods
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Response struct {
	*http.Response
	Body []byte
}

// Envelope is the success body every route writes.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// Data decodes the envelope's data field into target.
func (r *Response) Data(t *testing.T, target any) {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		t.Fatalf("failed to unmarshal envelope: %v. Body: %s", err, r.Body)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("failed to unmarshal data: %v. Body: %s", err, r.Body)
	}
}

func (c *Client) GET(t *testing.T, path, token string) *Response {
	t.Helper()
	return c.request(t, http.MethodGet, path, nil, token)
}

func (c *Client) POST(t *testing.T, path string, body any, token string) *Response {
	t.Helper()
	return c.request(t, http.MethodPost, path, body, token)
}

func (c *Client) PATCH(t *testing.T, path string, body any, token string) *Response {
	t.Helper()
	return c.request(t, http.MethodPatch, path, body, token)
}

func (c *Client) DELETE(t *testing.T, path, token string) *Response {
	t.Helper()
	return c.request(t, http.MethodDelete, path, nil, token)
}

func (c *Client) request(t *testing.T, method, path string, body any, token string) *Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}
}

// WaitForHealthy polls the health endpoint until service is ready
func (c *Client) WaitForHealthy(t *testing.T, maxWait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		resp, err := c.HTTPClient.Get(c.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		<-ticker.C
	}

	t.Fatalf("service at %s did not become healthy within %v", c.BaseURL, maxWait)
}

func AssertStatusCode(t *testing.T, resp *Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

func AssertContains(t *testing.T, resp *Response, substr string) {
	t.Helper()
	if !strings.Contains(string(resp.Body), substr) {
		t.Fatalf("response body does not contain %q. Body: %s", substr, resp.Body)
	}
}
