package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Default client settings.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	maxBody         = 32 << 20
)

// Client fetches documents over HTTP with retries and response caching.
type Client struct {
	HTTP     *http.Client
	Cache    cache.Cache
	Keyer    cache.Keyer
	TTL      time.Duration
	Attempts int
	Delay    time.Duration
	Logger   *log.Logger
}

// NewClient returns a client with default settings and no cache.
func NewClient() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: DefaultTimeout},
		Cache:    cache.NewNullCache(),
		Keyer:    cache.NewDefaultKeyer(),
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
	}
}

// Get returns the body of url. Cached bodies under (namespace, key) are
// returned without a request; fresh bodies are stored with c.TTL.
func (c *Client) Get(ctx context.Context, namespace, key, url string) ([]byte, error) {
	ck := c.Keyer.HTTPKey(namespace, key)
	if data, hit, err := c.Cache.Get(ctx, ck); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "http")
		c.debug("http cache hit", "namespace", namespace)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "http")

	var body []byte
	err := Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.fetch(ctx, url)
		if err != nil && IsRetryable(err) {
			c.debug("http retry", "url", url, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.Cache.Set(ctx, ck, body, c.TTL); err != nil {
		c.debug("http cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusServiceUnavailable:
		return nil, throttled(fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode), resp.Header)
	case resp.StatusCode >= 500:
		return nil, Retryable(fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, host)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}
	return body, nil
}

func (c *Client) debug(msg string, kv ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, kv...)
	}
}
