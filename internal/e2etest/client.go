package e2etest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Client talks JSON to the API under test.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(url string) *Client {
	return &Client{
		client: &http.Client{Timeout: 10 * time.Second}, //nolint:mnd // generous for slow CI.
		url:    url,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into dst.
func (r *Response) Decode(dst any) error {
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("unmarshal %q: %w", r.Body, err)
	}
	return nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Do(ctx, http.MethodGet, urlPath, nil)
		if err == nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Do sends a request with body encoded as JSON unless it is nil, and reads the whole response.
func (c *Client) Do(ctx context.Context, method, urlPath string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

// Get fetches urlPath and decodes the JSON response into dst when the status is 200.
func (c *Client) Get(ctx context.Context, urlPath string, dst any) error {
	return c.expectOK(ctx, http.MethodGet, urlPath, nil, dst)
}

// Post sends body as JSON and decodes the JSON response into dst when the status is 200.
func (c *Client) Post(ctx context.Context, urlPath string, body, dst any) error {
	return c.expectOK(ctx, http.MethodPost, urlPath, body, dst)
}

// Put sends body as JSON and decodes the JSON response into dst when the status is 200.
func (c *Client) Put(ctx context.Context, urlPath string, body, dst any) error {
	return c.expectOK(ctx, http.MethodPut, urlPath, body, dst)
}

func (c *Client) expectOK(ctx context.Context, method, urlPath string, body, dst any) error {
	resp, err := c.Do(ctx, method, urlPath, body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: unexpected status code %d: %s", method, urlPath, resp.StatusCode, resp.Body)
	}
	if dst == nil {
		return nil
	}
	return resp.Decode(dst)
}
