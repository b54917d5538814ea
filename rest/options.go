package rest

import (
	"fmt"
	"sort"
	"time"
)

// queryParam is one query parameter name with its values in append order.
type queryParam struct {
	name   string
	values []string
}

// headerField is a single header name/value pair. Names are compared
// case-sensitively at this layer; the transport normalizes case on the
// wire.
type headerField struct {
	name  string
	value string
}

// Options is an immutable bag of per-request settings: query parameters,
// headers, an optional body, and an optional timeout override. A single
// Options value may be reused across any number of calls and goroutines.
type Options struct {
	query      []queryParam
	headers    []headerField
	body       string
	hasBody    bool
	timeout    time.Duration
	hasTimeout bool
}

var emptyOptions = &Options{}

// EmptyOptions returns the shared options value with nothing set. Passing
// nil options to any client call behaves identically.
func EmptyOptions() *Options {
	return emptyOptions
}

// RequestOption configures a single entry in an Options value.
type RequestOption func(*Options) error

// NewOptions builds an immutable Options value from the given settings.
// Settings are applied in order; an invalid setting fails the whole build
// with an error wrapping ErrInvalidArgument.
func NewOptions(opts ...RequestOption) (*Options, error) {
	o := &Options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// QueryParam appends a query parameter value. Calling it twice with the
// same name keeps both values, in call order.
func QueryParam(name, value string) RequestOption {
	return func(o *Options) error {
		if name == "" {
			return fmt.Errorf("%w: query parameter name is required", ErrInvalidArgument)
		}
		for i := range o.query {
			if o.query[i].name == name {
				o.query[i].values = append(o.query[i].values, value)
				return nil
			}
		}
		o.query = append(o.query, queryParam{name: name, values: []string{value}})
		return nil
	}
}

// Header sets a request header. The last call for a given name wins.
func Header(name, value string) RequestOption {
	return func(o *Options) error {
		if name == "" {
			return fmt.Errorf("%w: header name is required", ErrInvalidArgument)
		}
		o.headers = setHeaderField(o.headers, name, value)
		return nil
	}
}

// Headers sets every header in the given map, in sorted-key order so the
// result is deterministic.
func Headers(headers map[string]string) RequestOption {
	return func(o *Options) error {
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
			o.headers = setHeaderField(o.headers, name, headers[name])
		}
		return nil
	}
}

// Body sets the request body. It is only sent for methods that carry a
// payload (POST, PUT, PATCH); see Client.Do.
func Body(body string) RequestOption {
	return func(o *Options) error {
		o.body = body
		o.hasBody = true
		return nil
	}
}

// Timeout overrides the client-wide request timeout for a single call.
func Timeout(d time.Duration) RequestOption {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive", ErrInvalidArgument)
		}
		o.timeout = d
		o.hasTimeout = true
		return nil
	}
}

// Body returns the body string and whether one was set.
func (o *Options) Body() (string, bool) {
	return o.body, o.hasBody
}

// Timeout returns the per-request timeout override and whether one was set.
func (o *Options) Timeout() (time.Duration, bool) {
	return o.timeout, o.hasTimeout
}

// setHeaderField applies last-write-wins semantics while preserving the
// insertion order of first appearance.
func setHeaderField(fields []headerField, name, value string) []headerField {
	for i := range fields {
		if fields[i].name == name {
			fields[i].value = value
			return fields
		}
	}
	return append(fields, headerField{name: name, value: value})
}
