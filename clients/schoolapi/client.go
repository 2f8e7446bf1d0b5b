package schoolapi

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

	"motoschool/config"
	"motoschool/utils"

	"go.uber.org/zap"
)

// DefaultClient talks to the upstream school API over a shared HTTP client
// with a bounded timeout.
type DefaultClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// New builds a client from the loaded configuration.
func New() *DefaultClient {
	return NewWithBase(config.AppConfig.SchoolAPIBaseURL, config.AppConfig.SchoolAPIKey, config.UpstreamTimeout())
}

// NewWithBase builds a client against an explicit base URL. Used by tests.
func NewWithBase(baseURL, apiKey string, timeout time.Duration) *DefaultClient {
	return &DefaultClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  utils.GetLogger(),
	}
}

func (c *DefaultClient) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON performs a GET and decodes the response body into out.
func (c *DefaultClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	return c.do(req, path, out)
}

// postJSON performs a POST with a JSON body and decodes the response into out.
func (c *DefaultClient) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *DefaultClient) do(req *http.Request, path string, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("school api request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("school api: %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("school api returned error status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &StatusError{Endpoint: path, Status: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// Ping checks upstream reachability for the health monitor.
func (c *DefaultClient) Ping(ctx context.Context) error {
	return c.getJSON(ctx, "/booking/settings", nil, nil)
}
