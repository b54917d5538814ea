package rest

import (
	"errors"
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}

func params(t *testing.T, pairs ...string) []queryParam {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("params requires name/value pairs")
	}
	opts := make([]RequestOption, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		opts = append(opts, QueryParam(pairs[i], pairs[i+1]))
	}
	o, err := NewOptions(opts...)
	if err != nil {
		t.Fatalf("building options: %v", err)
	}
	return o.query
}

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     string
		query    []string
		expected string
	}{
		{
			name:     "relative path against base",
			base:     "https://api.example.com/v1/",
			path:     "users",
			expected: "https://api.example.com/v1/users",
		},
		{
			name:     "rooted path against base",
			base:     "http://host/",
			path:     "/users",
			query:    []string{"page", "1", "sort", "name"},
			expected: "http://host/users?page=1&sort=name",
		},
		{
			name:     "absolute path ignores base",
			base:     "http://a.example.com",
			path:     "http://b.example.com/x",
			expected: "http://b.example.com/x",
		},
		{
			name:     "existing query is kept in front",
			base:     "http://host",
			path:     "/search?q=go",
			query:    []string{"page", "2"},
			expected: "http://host/search?q=go&page=2",
		},
		{
			name:     "existing query without new params",
			base:     "http://host",
			path:     "/search?q=go",
			expected: "http://host/search?q=go",
		},
		{
			name:     "no query means no question mark",
			base:     "http://host",
			path:     "/plain",
			expected: "http://host/plain",
		},
		{
			name:     "values are percent encoded",
			base:     "http://host",
			path:     "/q",
			query:    []string{"name with space", "a&b"},
			expected: "http://host/q?name+with+space=a%26b",
		},
		{
			name:     "repeated names keep every value in order",
			base:     "http://host",
			path:     "/q",
			query:    []string{"tag", "go", "tag", "http", "page", "1"},
			expected: "http://host/q?tag=go&tag=http&page=1",
		},
		{
			name:     "insertion order across names is preserved",
			base:     "http://host",
			path:     "/q",
			query:    []string{"zebra", "1", "apple", "2"},
			expected: "http://host/q?zebra=1&apple=2",
		},
		{
			name:     "empty path becomes root",
			path:     "http://example.com",
			expected: "http://example.com/",
		},
		{
			name:     "fragment survives the rebuild",
			base:     "http://host",
			path:     "/docs#auth",
			query:    []string{"v", "2"},
			expected: "http://host/docs?v=2#auth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var base *url.URL
			if tt.base != "" {
				base = mustParse(t, tt.base)
			}
			u, err := buildURI(base, tt.path, params(t, tt.query...))
			if err != nil {
				t.Fatalf("buildURI returned error: %v", err)
			}
			if u.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, u.String())
			}
		})
	}
}

func TestBuildURI_RelativePathWithoutBase(t *testing.T) {
	_, err := buildURI(nil, "/users", nil)
	if err == nil {
		t.Fatal("expected an error for a relative path with no base URL")
	}
	var uriErr *URIError
	if !errors.As(err, &uriErr) {
		t.Fatalf("expected *URIError, got %T: %v", err, err)
	}
	if uriErr.Path != "/users" {
		t.Errorf("expected path %q on error, got %q", "/users", uriErr.Path)
	}
}

func TestBuildURI_UnparsablePath(t *testing.T) {
	_, err := buildURI(nil, "http://host/%zz", nil)
	var uriErr *URIError
	if !errors.As(err, &uriErr) {
		t.Fatalf("expected *URIError, got %T: %v", err, err)
	}
}

func TestEncodeQuery_Empty(t *testing.T) {
	if got := encodeQuery(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
