package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/licensecharts/pkg/cache"
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/httputil"
	"github.com/matzehuels/licensecharts/pkg/observability"
)

// HTTP defaults.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultRetries  = 3
	DefaultCacheTTL = time.Hour
	maxBodySize     = 64 << 20
)

// HTTPProvider fetches datasets from the data service.
type HTTPProvider struct {
	base    string
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	retry   httputil.Policy
	headers map[string]string
	refresh bool
}

// HTTPOption configures an [HTTPProvider].
type HTTPOption func(*HTTPProvider)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPProvider) { p.http = c }
}

// WithCache stores fetched bodies in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) HTTPOption {
	return func(p *HTTPProvider) { p.cache, p.ttl = c, ttl }
}

// WithKeyer sets the cache key layout.
func WithKeyer(k cache.Keyer) HTTPOption {
	return func(p *HTTPProvider) { p.keyer = k }
}

// WithRetries sets the attempt count and first backoff delay.
func WithRetries(attempts int, delay time.Duration) HTTPOption {
	return func(p *HTTPProvider) { p.retry.Attempts, p.retry.Delay = attempts, delay }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) HTTPOption {
	return func(p *HTTPProvider) { p.headers[key] = value }
}

// WithRefresh bypasses cached bodies; fresh bodies are still stored.
func WithRefresh(refresh bool) HTTPOption {
	return func(p *HTTPProvider) { p.refresh = refresh }
}

// NewHTTPProvider returns a provider for the service at baseURL.
func NewHTTPProvider(baseURL string, opts ...HTTPOption) (*HTTPProvider, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	p := &HTTPProvider{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		ttl:     DefaultCacheTTL,
		retry:   httputil.DefaultPolicy,
		headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// BaseURL returns the service address without a trailing slash.
func (p *HTTPProvider) BaseURL() string { return p.base }

// Fetch returns the body of <base>/<endpoint>. The body must be valid JSON;
// it is returned unmodified.
func (p *HTTPProvider) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	if err := errors.ValidateDatasetName(endpoint); err != nil {
		return nil, err
	}
	key := p.keyer.SourceKey(p.base, endpoint)
	hooks := observability.Cache()

	if !p.refresh {
		data, hit, err := p.cache.Get(ctx, key)
		if err == nil && hit {
			hooks.OnCacheHit(ctx, cache.KeyTypeSource)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeSource)
	}

	var body []byte
	err := p.retry.Do(ctx, func() error {
		var err error
		body, err = p.get(ctx, p.base+"/"+endpoint)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s/%s returned a body that is not JSON", p.base, endpoint)
	}

	if err := p.cache.Set(ctx, key, body, p.ttl); err == nil {
		hooks.OnCacheSet(ctx, cache.KeyTypeSource, len(body))
	}
	return body, nil
}

func (p *HTTPProvider) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := splitURL(rawURL)
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := p.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", rawURL))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, rawURL); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL))
	}
	return body, nil
}

func checkStatus(resp *http.Response, rawURL string) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "GET %s: %s", rawURL, resp.Status)
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &errors.RateLimitedError{RetryAfter: retryAfter, Message: fmt.Sprintf("GET %s", rawURL)}
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: %s", rawURL, resp.Status))
	default:
		return errors.New(errors.ErrCodeNetwork, "GET %s: %s", rawURL, resp.Status)
	}
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}

var _ Provider = (*HTTPProvider)(nil)
