package rest

import (
	"crypto/tls"
	"net/http/httptrace"
	"time"
)

// Timing holds the phase durations observed for a single round trip.
// Phases that did not occur (for example TLS on a plain-HTTP call, or DNS
// when a connection was reused) are zero.
type Timing struct {
	Start           time.Time
	DNSLookup       time.Duration
	TCPConnect      time.Duration
	TLSHandshake    time.Duration
	TimeToFirstByte time.Duration
	ContentTransfer time.Duration
	Total           time.Duration
}

// traceRecorder accumulates phase timestamps from an httptrace.ClientTrace.
// It is only touched by the transport goroutines for a single request, in
// phase order, so no locking is needed.
type traceRecorder struct {
	timing *Timing

	dnsStart  time.Time
	connStart time.Time
	tlsStart  time.Time
	lastPhase time.Time

	dnsDone  bool
	connDone bool
}

func newTraceRecorder() (*traceRecorder, *httptrace.ClientTrace) {
	r := &traceRecorder{timing: &Timing{Start: time.Now()}}
	r.lastPhase = r.timing.Start

	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			r.dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			now := time.Now()
			r.timing.DNSLookup = now.Sub(r.dnsStart)
			r.dnsDone = true
			r.lastPhase = now
		},
		ConnectStart: func(network, addr string) {
			if r.dnsDone {
				r.connStart = time.Now()
			}
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				now := time.Now()
				r.timing.TCPConnect = now.Sub(r.connStart)
				r.connDone = true
				r.lastPhase = now
			}
		},
		TLSHandshakeStart: func() {
			if r.connDone {
				r.tlsStart = time.Now()
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				now := time.Now()
				r.timing.TLSHandshake = now.Sub(r.tlsStart)
				r.lastPhase = now
			}
		},
		GotFirstResponseByte: func() {
			r.timing.TimeToFirstByte = time.Since(r.lastPhase)
		},
	}

	return r, trace
}

// finish stamps the content transfer and total durations once the body has
// been fully read.
func (r *traceRecorder) finish(transferStart time.Time) Timing {
	r.timing.ContentTransfer = time.Since(transferStart)
	r.timing.Total = time.Since(r.timing.Start)
	return *r.timing
}
