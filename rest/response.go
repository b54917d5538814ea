package rest

import (
	"net/http"
	"net/url"
)

// Response is a read-only view over the outcome of a successful round
// trip: status code, headers, UTF-8 body, and the effective request URI
// after base-URL resolution and query merging.
type Response struct {
	statusCode int
	headers    http.Header
	body       string
	uri        *url.URL
	timing     Timing
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Headers returns the full response header multimap. Callers must not
// modify it.
func (r *Response) Headers() http.Header {
	return r.headers
}

// Body returns the response body decoded as UTF-8.
func (r *Response) Body() string {
	return r.body
}

// URI returns the effective request URI.
func (r *Response) URI() *url.URL {
	return r.uri
}

// Timing returns the phase durations observed for this round trip.
func (r *Response) Timing() Timing {
	return r.timing
}

// Header returns the first value for the named header, and whether the
// header is present at all. The empty name is never present.
func (r *Response) Header(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	values := r.headers.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// IsSuccessful reports whether the status code is in the 2xx range.
func (r *Response) IsSuccessful() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// IsRedirect reports whether the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.statusCode >= 300 && r.statusCode < 400
}

// IsClientError reports whether the status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.statusCode >= 400 && r.statusCode < 500
}

// IsServerError reports whether the status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.statusCode >= 500 && r.statusCode < 600
}
