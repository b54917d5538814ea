package rest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultRequestTimeout = 30 * time.Second

	maxRedirects = 10
)

// RedirectPolicy controls how the client treats 3xx responses.
type RedirectPolicy int

const (
	// RedirectNormal follows redirects, but never from HTTPS down to
	// plain HTTP. This is the default.
	RedirectNormal RedirectPolicy = iota
	// RedirectNever returns the redirect response itself.
	RedirectNever
	// RedirectAlways follows every redirect, downgrades included.
	RedirectAlways
)

// HTTPVersion selects the preferred protocol version. The transport may
// still fall back to HTTP/1.1 when the server does not speak HTTP/2.
type HTTPVersion int

const (
	// HTTP2 prefers HTTP/2 with transport-governed fallback. Default.
	HTTP2 HTTPVersion = iota
	// HTTP1 pins the client to HTTP/1.1.
	HTTP1
)

// Client issues HTTP requests against an optional base URL with a set of
// default headers. It is immutable once built and safe for concurrent use;
// connection pooling lives in the underlying http.Client.
type Client struct {
	httpClient     *http.Client
	baseURL        *url.URL
	defaultHeaders []headerField
	requestTimeout time.Duration
}

type clientConfig struct {
	baseURL        *url.URL
	connectTimeout time.Duration
	requestTimeout time.Duration
	defaultHeaders []headerField
	redirectPolicy RedirectPolicy
	httpVersion    HTTPVersion
	transport      http.RoundTripper
}

// Option configures a Client during New.
type Option func(*clientConfig) error

// WithBaseURL sets the base URL that relative request paths are resolved
// against.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) error {
		if baseURL == "" {
			return fmt.Errorf("%w: base URL is required", ErrInvalidArgument)
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("%w: parsing base URL: %v", ErrInvalidArgument, err)
		}
		c.baseURL = u
		return nil
	}
}

// WithConnectTimeout sets the TCP connect timeout. Default 10s.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *clientConfig) error {
		if d <= 0 {
			return fmt.Errorf("%w: connect timeout must be positive", ErrInvalidArgument)
		}
		c.connectTimeout = d
		return nil
	}
}

// WithRequestTimeout sets the client-wide request timeout, applied when a
// call carries no per-request override. Without it a hard default of 30s
// applies.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *clientConfig) error {
		if d <= 0 {
			return fmt.Errorf("%w: request timeout must be positive", ErrInvalidArgument)
		}
		c.requestTimeout = d
		return nil
	}
}

// WithDefaultHeader adds a header sent on every request. Last write wins
// for a given name; per-request headers override defaults.
func WithDefaultHeader(name, value string) Option {
	return func(c *clientConfig) error {
		if name == "" {
			return fmt.Errorf("%w: header name is required", ErrInvalidArgument)
		}
		c.defaultHeaders = setHeaderField(c.defaultHeaders, name, value)
		return nil
	}
}

// WithDefaultHeaders adds every header in the map, in sorted-key order.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *clientConfig) error {
		if headers == nil {
			return fmt.Errorf("%w: headers map is required", ErrInvalidArgument)
		}
		names := make([]string, 0, len(headers))
		for name := range headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%w: header name is required", ErrInvalidArgument)
			}
			c.defaultHeaders = setHeaderField(c.defaultHeaders, name, headers[name])
		}
		return nil
	}
}

// WithRedirectPolicy sets how 3xx responses are handled. Default
// RedirectNormal.
func WithRedirectPolicy(policy RedirectPolicy) Option {
	return func(c *clientConfig) error {
		switch policy {
		case RedirectNormal, RedirectNever, RedirectAlways:
			c.redirectPolicy = policy
			return nil
		default:
			return fmt.Errorf("%w: unknown redirect policy %d", ErrInvalidArgument, policy)
		}
	}
}

// WithHTTPVersion sets the preferred protocol version. Default HTTP2.
func WithHTTPVersion(version HTTPVersion) Option {
	return func(c *clientConfig) error {
		switch version {
		case HTTP2, HTTP1:
			c.httpVersion = version
			return nil
		default:
			return fmt.Errorf("%w: unknown HTTP version %d", ErrInvalidArgument, version)
		}
	}
}

// WithTransport replaces the transport built from the connect timeout and
// version settings. Mainly useful in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *clientConfig) error {
		if rt == nil {
			return fmt.Errorf("%w: transport must not be nil", ErrInvalidArgument)
		}
		c.transport = rt
		return nil
	}
}

// New builds an immutable Client. The underlying transport is constructed
// eagerly from the connect timeout, redirect policy, and protocol version.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{
		connectTimeout: defaultConnectTimeout,
		redirectPolicy: RedirectNormal,
		httpVersion:    HTTP2,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	transport := cfg.transport
	if transport == nil {
		dialer := &net.Dialer{Timeout: cfg.connectTimeout}
		t := &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DialContext:       dialer.DialContext,
			ForceAttemptHTTP2: true,
		}
		if cfg.httpVersion == HTTP1 {
			t.ForceAttemptHTTP2 = false
			t.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
		}
		transport = t
	}

	return &Client{
		httpClient: &http.Client{
			Transport:     transport,
			CheckRedirect: checkRedirect(cfg.redirectPolicy),
		},
		baseURL:        cfg.baseURL,
		defaultHeaders: cfg.defaultHeaders,
		requestTimeout: cfg.requestTimeout,
	}, nil
}

func checkRedirect(policy RedirectPolicy) func(*http.Request, []*http.Request) error {
	switch policy {
	case RedirectNever:
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	case RedirectAlways:
		return nil
	default:
		return func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			prev := via[len(via)-1]
			if prev.URL.Scheme == "https" && req.URL.Scheme == "http" {
				return errors.New("refusing redirect from https to http")
			}
			return nil
		}
	}
}

// Get issues a GET request. A nil opts behaves as EmptyOptions.
func (c *Client) Get(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, opts)
}

// Post issues a POST request with the options' body, if any.
func (c *Client) Post(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, opts)
}

// Put issues a PUT request with the options' body, if any.
func (c *Client) Put(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, opts)
}

// Patch issues a PATCH request with the options' body, if any.
func (c *Client) Patch(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, opts)
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodHead, path, opts)
}

// Options issues an OPTIONS request.
func (c *Client) Options(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodOptions, path, opts)
}

// Do dispatches a single request and blocks until the full response body
// has been read, the resolved timeout elapses, or ctx is canceled.
//
// GET, DELETE, HEAD, and OPTIONS never carry a body, even when opts sets
// one: those methods are defined as payload-free in this client. POST,
// PUT, and PATCH send the options' body when present.
func (c *Client) Do(ctx context.Context, method, path string, opts *Options) (*Response, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrInvalidArgument)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidArgument)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts == nil {
		opts = EmptyOptions()
	}

	uri, err := buildURI(c.baseURL, path, opts.query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.resolveTimeout(opts))
	defer cancel()

	recorder, trace := newTraceRecorder()
	ctx = httptrace.WithClientTrace(ctx, trace)

	req, err := http.NewRequestWithContext(ctx, method, uri.String(), requestBody(method, opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	for _, f := range mergeHeaders(c.defaultHeaders, opts.headers) {
		req.Header.Set(f.name, f.value)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Method: method, URI: uri.String(), Err: err}
	}
	defer httpResp.Body.Close()

	transferStart := time.Now()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &ClientError{Method: method, URI: uri.String(), Err: err}
	}

	return &Response{
		statusCode: httpResp.StatusCode,
		headers:    httpResp.Header,
		body:       string(body),
		uri:        uri,
		timing:     recorder.finish(transferStart),
	}, nil
}

// resolveTimeout applies the timeout precedence: per-request override,
// then client-wide request timeout, then the 30s hard default.
func (c *Client) resolveTimeout(opts *Options) time.Duration {
	if d, ok := opts.Timeout(); ok {
		return d
	}
	if c.requestTimeout > 0 {
		return c.requestTimeout
	}
	return defaultRequestTimeout
}

// requestBody selects the body reader by method. Payload-free methods
// return nil regardless of what the options carry.
func requestBody(method string, opts *Options) io.Reader {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return nil
	}
	body, ok := opts.Body()
	if !ok {
		return nil
	}
	return strings.NewReader(body)
}

// mergeHeaders layers per-request headers over client defaults. A
// per-request header replaces a default with the same (case-sensitive)
// name in place; new names append after the defaults.
func mergeHeaders(defaults, overrides []headerField) []headerField {
	merged := make([]headerField, len(defaults), len(defaults)+len(overrides))
	copy(merged, defaults)
	for _, f := range overrides {
		merged = setHeaderField(merged, f.name, f.value)
	}
	return merged
}
