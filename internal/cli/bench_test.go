package cli

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenchCommand(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	out := executeCommand(t, "bench", server.URL, "-n", "5", "--warmup", "2", "--no-color")

	// 5 measured plus 2 warmup.
	assert.Equal(t, int64(7), hits.Load())
	assert.Contains(t, out, "requests:  5")
	assert.Contains(t, out, "5 ok")
	assert.Contains(t, out, "p50:")
	assert.Contains(t, out, "p99:")
}

func TestBenchCommand_CountsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	out := executeCommand(t, "bench", server.URL, "-n", "3", "--warmup", "0", "--no-color")

	assert.Contains(t, out, "requests:  3")
	assert.Contains(t, out, "3 failed")
}
