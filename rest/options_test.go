package rest

import (
	"errors"
	"testing"
	"time"
)

func TestNewOptions_QueryParamAppends(t *testing.T) {
	o, err := NewOptions(
		QueryParam("tag", "go"),
		QueryParam("page", "1"),
		QueryParam("tag", "http"),
	)
	if err != nil {
		t.Fatalf("building options: %v", err)
	}

	if len(o.query) != 2 {
		t.Fatalf("expected 2 parameter names, got %d", len(o.query))
	}
	if o.query[0].name != "tag" || o.query[1].name != "page" {
		t.Errorf("expected insertion order [tag page], got [%s %s]", o.query[0].name, o.query[1].name)
	}
	if len(o.query[0].values) != 2 || o.query[0].values[0] != "go" || o.query[0].values[1] != "http" {
		t.Errorf("expected tag values [go http], got %v", o.query[0].values)
	}
}

func TestNewOptions_HeaderLastWriteWins(t *testing.T) {
	o, err := NewOptions(
		Header("Accept", "application/xml"),
		Header("X-Trace", "abc"),
		Header("Accept", "application/json"),
	)
	if err != nil {
		t.Fatalf("building options: %v", err)
	}

	if len(o.headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(o.headers))
	}
	// Overwriting keeps the original position.
	if o.headers[0].name != "Accept" || o.headers[0].value != "application/json" {
		t.Errorf("expected Accept=application/json first, got %s=%s", o.headers[0].name, o.headers[0].value)
	}
}

func TestNewOptions_HeaderNamesAreCaseSensitive(t *testing.T) {
	o, err := NewOptions(
		Header("x-token", "a"),
		Header("X-Token", "b"),
	)
	if err != nil {
		t.Fatalf("building options: %v", err)
	}
	if len(o.headers) != 2 {
		t.Errorf("expected distinct entries for x-token and X-Token, got %d", len(o.headers))
	}
}

func TestNewOptions_BodyAndTimeout(t *testing.T) {
	o, err := NewOptions(Body(`{"ok":true}`), Timeout(5*time.Second))
	if err != nil {
		t.Fatalf("building options: %v", err)
	}

	body, ok := o.Body()
	if !ok || body != `{"ok":true}` {
		t.Errorf("expected body to be set, got %q (set=%v)", body, ok)
	}
	d, ok := o.Timeout()
	if !ok || d != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v (set=%v)", d, ok)
	}
}

func TestNewOptions_EmptyBodyStringCountsAsSet(t *testing.T) {
	o, err := NewOptions(Body(""))
	if err != nil {
		t.Fatalf("building options: %v", err)
	}
	if _, ok := o.Body(); !ok {
		t.Error("expected an explicitly empty body to register as set")
	}
}

func TestNewOptions_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		opt  RequestOption
	}{
		{"empty query name", QueryParam("", "v")},
		{"empty header name", Header("", "v")},
		{"nil headers map", Headers(nil)},
		{"zero timeout", Timeout(0)},
		{"negative timeout", Timeout(-time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOptions(tt.opt)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestEmptyOptions_Shared(t *testing.T) {
	if EmptyOptions() != EmptyOptions() {
		t.Error("expected EmptyOptions to return the shared value")
	}

	o, err := NewOptions()
	if err != nil {
		t.Fatalf("building options: %v", err)
	}
	if len(o.query) != 0 || len(o.headers) != 0 {
		t.Error("expected a fresh Options to carry nothing")
	}
	if _, ok := o.Body(); ok {
		t.Error("expected no body on empty options")
	}
	if _, ok := o.Timeout(); ok {
		t.Error("expected no timeout on empty options")
	}
}

func TestHeadersOption_SortedAndOverwriting(t *testing.T) {
	o, err := NewOptions(
		Header("Accept", "text/plain"),
		Headers(map[string]string{
			"X-B":    "2",
			"Accept": "application/json",
			"X-A":    "1",
		}),
	)
	if err != nil {
		t.Fatalf("building options: %v", err)
	}

	if len(o.headers) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(o.headers))
	}
	if o.headers[0].value != "application/json" {
		t.Errorf("expected Accept overwritten to application/json, got %s", o.headers[0].value)
	}
	if o.headers[1].name != "X-A" || o.headers[2].name != "X-B" {
		t.Errorf("expected map entries applied in sorted order, got [%s %s]", o.headers[1].name, o.headers[2].name)
	}
}
