// Package bench collects request latencies and summarizes them as
// percentiles backed by an HDR histogram.
package bench

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder accumulates per-request latencies in microseconds.
// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
type Recorder struct {
	hist     *hdrhistogram.Histogram
	success  int64
	failures int64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, time.Hour.Microseconds(), 3),
	}
}

// Record adds one observation. Failed requests count toward the failure
// total but still contribute their latency.
func (r *Recorder) Record(latency time.Duration, ok bool) {
	_ = r.hist.RecordValue(latency.Microseconds())
	if ok {
		r.success++
	} else {
		r.failures++
	}
}

// Summary is a point-in-time aggregate over everything recorded.
type Summary struct {
	Count    int64
	Success  int64
	Failures int64

	Min  time.Duration
	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	P99  time.Duration
	Max  time.Duration
}

// Summarize computes the latency distribution recorded so far.
func (r *Recorder) Summarize() Summary {
	return Summary{
		Count:    r.hist.TotalCount(),
		Success:  r.success,
		Failures: r.failures,
		Min:      time.Duration(r.hist.Min()) * time.Microsecond,
		Mean:     time.Duration(r.hist.Mean()) * time.Microsecond,
		P50:      time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:      time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond,
		P99:      time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond,
		Max:      time.Duration(r.hist.Max()) * time.Microsecond,
	}
}
