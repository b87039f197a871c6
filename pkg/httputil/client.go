package httputil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pagebinder/pagebinder/pkg/cache"
	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// DefaultTimeout bounds a single download attempt.
const DefaultTimeout = 30 * time.Second

// Client wraps net/http with retry logic, default headers, and an optional
// byte cache keyed by URL. A nil cache disables caching entirely.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
	headers  map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a byte cache; fetched bodies are stored under their URL
// with the given TTL and served from cache on subsequent fetches.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.http.Timeout = d }
}

// WithHeaders sets default headers applied to every request.
func WithHeaders(headers map[string]string) Option {
	return func(cl *Client) { cl.headers = headers }
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the full body at url, with retry on transient failures.
// If a cache is attached, a fresh cached body short-circuits the request and
// successful responses are written back to the cache.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if data, hit, _ := c.cache.Get(ctx, url); hit {
			return data, nil
		}
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		data, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, url, body, c.cacheTTL)
	}
	return body, nil
}

// FetchTo streams the body at url into w, with retry on transient failures.
// FetchTo bypasses the cache; it is intended for large downloads.
func (c *Client) FetchTo(ctx context.Context, url string, w io.Writer) (int64, error) {
	var written int64
	err := RetryWithBackoff(ctx, func() error {
		resp, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		written, err = io.Copy(w, resp.Body)
		if err != nil {
			return &RetryableError{Err: pberrors.Wrap(pberrors.ErrCodeNetwork, err, "reading response body")}
		}
		return nil
	})
	return written, err
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, &RetryableError{Err: pberrors.Wrap(pberrors.ErrCodeNetwork, err, "reading response body")}
	}
	return buf.Bytes(), nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pberrors.Wrap(pberrors.ErrCodeInvalidInput, err, "building request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: pberrors.Wrap(pberrors.ErrCodeNetwork, err, "fetching %s", url)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return pberrors.New(pberrors.ErrCodeNotFound, "status 404")
	case code >= 500:
		return &RetryableError{Err: pberrors.New(pberrors.ErrCodeNetwork, "status %d", code)}
	default:
		return pberrors.New(pberrors.ErrCodeNetwork, "status %d", code)
	}
}
