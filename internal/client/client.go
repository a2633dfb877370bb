package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/parley/parley-go/internal/model"
	"github.com/parley/parley-go/internal/room"
)

// ErrNoContent is returned when the server answered 204 No Content.
var ErrNoContent = errors.New("server returned no content")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// Client talks to a Parley API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Delete sends body as JSON with DELETE.
func (c *Client) Delete(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodDelete, path, body)
}

// Get sends a GET with the given request headers, which may be nil.
func (c *Client) Get(ctx context.Context, path string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.http.Do(req)
}

// Post sends body as JSON with POST.
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Put sends body as JSON with PUT.
func (c *Client) Put(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// RandomWord asks the server for a passphrase. words <= 0 leaves the count
// to the server default.
func (c *Client) RandomWord(ctx context.Context, words int) (string, error) {
	path := "/api/randomword"
	if words > 0 {
		path += "?" + url.Values{"w": {strconv.Itoa(words)}}.Encode()
	}

	resp, err := c.Get(ctx, path, nil)
	if err != nil {
		return "", err
	}

	var out model.PassphraseResponse
	if err := decode(resp, &out); err != nil {
		return "", err
	}
	return out.Wordlist, nil
}

// Room asks the server to encode sel, using the positional wire form.
func (c *Client) Room(ctx context.Context, sel room.Selection) (string, error) {
	resp, err := c.Post(ctx, "/api/room", sel.Flags())
	if err != nil {
		return "", err
	}

	var out model.RoomResponse
	if err := decode(resp, &out); err != nil {
		return "", err
	}
	return out.Query, nil
}

func decode(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return ErrNoContent
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body map[string]string
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
			apiErr.Message = body["error"]
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
