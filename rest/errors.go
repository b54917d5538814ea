package rest

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel error wrapped by every
// configuration-time validation failure, from both client options and
// request options.
var ErrInvalidArgument = errors.New("invalid argument")

// URIError is returned when a request path cannot be resolved or
// reassembled into a valid URI. It is raised at dispatch time and is
// never retried.
type URIError struct {
	Path string
	Err  error
}

func (e *URIError) Error() string {
	return fmt.Sprintf("building URI for path %q: %v", e.Path, e.Err)
}

func (e *URIError) Unwrap() error {
	return e.Err
}

// ClientError is returned when the transport cannot complete a request:
// connect timeout, I/O failure, TLS failure, DNS failure, or context
// cancellation. It carries the method and URI for diagnostics and wraps
// the underlying cause.
type ClientError struct {
	Method string
	URI    string
	Err    error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URI, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}
