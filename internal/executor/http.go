package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// HTTP posts commands as JSON to a remote /execute endpoint.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP executor for url. timeout bounds each request;
// 0 means no client-side timeout.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{url: url, client: &http.Client{Timeout: timeout}}
}

// URL returns the endpoint.
func (h *HTTP) URL() string { return h.url }

// Execute implements Executor. A non-2xx status is reported as a transport
// error, as is any failure to reach the server or decode its answer.
func (h *HTTP) Execute(ctx context.Context, command string) (Result, error) {
	body, err := json.Marshal(Request{Command: command})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return Result{}, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	return res, nil
}
