package mediacore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	DefaultBackendURL = "http://localhost:8080"
	DefaultTimeout    = 30 * time.Second
)

// Backend is the subset of the HTTP backend the dispatcher relies on.
type Backend interface {
	HealthCheck(ctx context.Context) error
	Process(ctx context.Context, req ProcessRequest) (*ProcessResponse, error)
	Compare(ctx context.Context, original, processed string) (*CompareResult, error)
	Info(ctx context.Context, path string) (*MediaInfo, error)
	Compress(ctx context.Context, req CompressRequest) (*CompressResponse, error)
}

// Client talks JSON over HTTP to the media backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. Empty values fall back to
// DefaultBackendURL and DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBackendURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Process submits a processing job.
func (c *Client) Process(ctx context.Context, req ProcessRequest) (*ProcessResponse, error) {
	var out ProcessResponse
	if err := c.do(ctx, http.MethodPost, "/api/process", req, &out); err != nil {
		return nil, fmt.Errorf("process request: %w", err)
	}
	return &out, nil
}

// Compare asks the backend to compare two files.
func (c *Client) Compare(ctx context.Context, original, processed string) (*CompareResult, error) {
	var out CompareResult
	body := CompareRequest{Original: original, Processed: processed}
	if err := c.do(ctx, http.MethodPost, "/api/compare", body, &out); err != nil {
		return nil, fmt.Errorf("compare request: %w", err)
	}
	return &out, nil
}

// Info fetches metadata for a single file.
func (c *Client) Info(ctx context.Context, path string) (*MediaInfo, error) {
	var out MediaInfo
	endpoint := "/api/info?path=" + url.QueryEscape(path)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("info request: %w", err)
	}
	return &out, nil
}

// Compress submits a bitrate compression job.
func (c *Client) Compress(ctx context.Context, req CompressRequest) (*CompressResponse, error) {
	var out CompressResponse
	if err := c.do(ctx, http.MethodPost, "/api/compress", req, &out); err != nil {
		return nil, fmt.Errorf("compress request: %w", err)
	}
	return &out, nil
}

// Health returns the backend health report. A 2xx answer with a body that is
// not a health document still counts as healthy.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	health := &HealthResponse{}
	if err := json.NewDecoder(resp.Body).Decode(health); err != nil {
		Debug("Health body is not JSON", "error", err)
		health = &HealthResponse{Status: "OK"}
	}
	return health, nil
}

// HealthCheck reports whether the backend answers GET /health with 2xx.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w: %w", ErrDecode, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in interface{}) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := shortuuid.New()
	req.Header.Set("X-Request-ID", requestID)

	Debug("Backend request", "method", method, "url", req.URL.String(), "request_id", requestID)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend at %s: %w", c.baseURL, err)
	}
	Debug("Backend response", "status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(start))
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
