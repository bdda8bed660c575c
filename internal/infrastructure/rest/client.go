package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/you/estately/domain"
)

// Client is the HTTP client for the remote property API. All outbound
// requests flow through a bearerTransport that attaches the current session
// token and reports auth failures back to the session manager.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates an API client. tokens supplies the current bearer token;
// onAuthFailure is invoked when a non-public endpoint answers 401/403.
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider, onAuthFailure AuthFailureFunc, logger *slog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				base:          http.DefaultTransport,
				tokens:        tokens,
				onAuthFailure: onAuthFailure,
			},
		},
		Logger: logger,
	}
}

// do performs a JSON request and decodes the response into out (which may be
// nil for empty replies). Failures are translated to the domain taxonomy
// before they are returned; raw transport errors never escape.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("api request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}

	c.Logger.Debug("api response", "status", resp.StatusCode, "url", url)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: unparsable response body", domain.ErrUnexpectedReply)
	}
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
