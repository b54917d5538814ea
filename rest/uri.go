package rest

import (
	"errors"
	"net/url"
	"strings"
)

// buildURI produces the final request URI for a call: it resolves path
// against the base URI (absolute paths ignore the base), then merges the
// options' query parameters with any query string already present on the
// resolved URI.
func buildURI(base *url.URL, path string, query []queryParam) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, &URIError{Path: path, Err: err}
	}

	var resolved *url.URL
	if base != nil {
		resolved = base.ResolveReference(ref)
	} else {
		if !ref.IsAbs() {
			return nil, &URIError{Path: path, Err: errors.New("no base URL configured and path is not absolute")}
		}
		resolved = ref
	}

	combined := resolved.RawQuery
	if encoded := encodeQuery(query); encoded != "" {
		if combined == "" {
			combined = encoded
		} else {
			combined = combined + "&" + encoded
		}
	}

	final := *resolved
	final.RawQuery = combined
	if final.Path == "" {
		final.Path = "/"
	}

	// url.URL assembly itself cannot fail, so validate the reassembled
	// form by round-tripping it once.
	checked, err := url.Parse(final.String())
	if err != nil {
		return nil, &URIError{Path: path, Err: err}
	}
	return checked, nil
}

// encodeQuery percent-encodes the parameters as name=value pairs joined
// by "&", preserving insertion order across names and within a name. This
// is deliberately not url.Values.Encode, which sorts keys.
func encodeQuery(query []queryParam) string {
	var b strings.Builder
	for _, p := range query {
		for _, v := range p.values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(p.name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
