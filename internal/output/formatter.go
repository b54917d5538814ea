// Package output renders requests and responses for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riposte-dev/riposte/rest"
)

// RequestInfo carries what the CLI knows about an outgoing request for
// display purposes.
type RequestInfo struct {
	Method  string
	URL     string
	Headers [][2]string
	Body    string
}

// Formatter renders requests and responses as text.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a formatter. With noColor all ANSI codes are
// suppressed.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{Verbose: verbose, scheme: scheme}
}

// FormatRequest renders the outgoing request line, headers, and body.
func (f *Formatter) FormatRequest(info RequestInfo) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "▶ %s %s\n", f.scheme.Method.Sprint(info.Method), f.scheme.URL.Sprint(info.URL))

	if len(info.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, h := range info.Headers {
			fmt.Fprintf(&buf, "    %s: %s\n", f.scheme.HeaderKey.Sprint(h[0]), h[1])
		}
	}

	if info.Body != "" {
		fmt.Fprintf(&buf, "  Body: %s\n", indentJSON(info.Body))
	}

	return buf.String()
}

// FormatResponse renders the status line, headers, body, and, in verbose
// mode, the per-phase timing breakdown.
func (f *Formatter) FormatResponse(resp *rest.Response) string {
	var buf strings.Builder

	status := f.scheme.StatusError
	switch {
	case resp.IsSuccessful():
		status = f.scheme.StatusOK
	case resp.IsRedirect():
		status = f.scheme.StatusWarn
	}
	fmt.Fprintf(&buf, "◀ %s (%s)\n", status.Sprintf("%d", resp.StatusCode()), resp.Timing().Total)

	headers := resp.Headers()
	if len(headers) > 0 {
		names := make([]string, 0, len(headers))
		for name := range headers {
			names = append(names, name)
		}
		sort.Strings(names)

		buf.WriteString("  Headers:\n")
		for _, name := range names {
			for _, value := range headers[name] {
				fmt.Fprintf(&buf, "    %s: %s\n", f.scheme.HeaderKey.Sprint(name), value)
			}
		}
	}

	if body := resp.Body(); body != "" {
		fmt.Fprintf(&buf, "  Body: %s\n", indentJSON(body))
	}

	if f.Verbose {
		f.writeTiming(&buf, resp.Timing())
	}

	return buf.String()
}

func (f *Formatter) writeTiming(buf *strings.Builder, timing rest.Timing) {
	fmt.Fprintf(buf, "  %s\n", f.scheme.Label.Sprint("Timing:"))
	phases := []struct {
		name string
		d    time.Duration
	}{
		{"DNS lookup", timing.DNSLookup},
		{"TCP connect", timing.TCPConnect},
		{"TLS handshake", timing.TLSHandshake},
		{"First byte", timing.TimeToFirstByte},
		{"Transfer", timing.ContentTransfer},
		{"Total", timing.Total},
	}
	for _, p := range phases {
		fmt.Fprintf(buf, "    %-13s %s\n", p.name+":", p.d)
	}
}

// indentJSON pretty-prints s when it is valid JSON, and returns it
// untouched otherwise.
func indentJSON(s string) string {
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(s), "  ", "  "); err != nil {
		return s
	}
	return out.String()
}
