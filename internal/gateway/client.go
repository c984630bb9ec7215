package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/cache"
)

// Response is the raw upstream reply. The gateway relays status and body
// verbatim, so no decoding happens here.
type Response struct {
	Status int
	Body   []byte
}

// ServerClient forwards validated requests to the server tier.
type ServerClient struct {
	baseURL    string
	httpClient *http.Client

	cache cache.Cache
}

func NewServerClient(baseURL string) *ServerClient {
	return &ServerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseCache enables caching of selected GET endpoints. Only 200 responses are
// cached; the TTL lives in the cache implementation.
func (c *ServerClient) UseCache(cc cache.Cache) {
	c.cache = cc
}

func (c *ServerClient) Get(ctx context.Context, path string, userID int64) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, userID, nil)
}

// GetCached is Get with a read-through cache keyed by path and user.
func (c *ServerClient) GetCached(ctx context.Context, path string, userID int64) (*Response, error) {
	if c.cache == nil {
		return c.Get(ctx, path, userID)
	}

	key := fmt.Sprintf("gw:%d:%s", userID, path)
	if data, err := c.cache.Get(ctx, key); err == nil && data != nil {
		return &Response{Status: http.StatusOK, Body: data}, nil
	}

	resp, err := c.Get(ctx, path, userID)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusOK {
		_ = c.cache.Set(ctx, key, resp.Body)
	}
	return resp, nil
}

func (c *ServerClient) Post(ctx context.Context, path string, userID int64, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, userID, body)
}

func (c *ServerClient) Patch(ctx context.Context, path string, userID int64, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, userID, body)
}

func (c *ServerClient) Delete(ctx context.Context, path string, userID int64) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, userID, nil)
}

func (c *ServerClient) do(ctx context.Context, method, path string, userID int64, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(sharerUserHeader, strconv.FormatInt(userID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read server response: %w", err)
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}
