package main

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/e2etest"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fakeUpstream mimics the chat completions API.
type fakeUpstream struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeUpstream(t *testing.T, delay time.Duration) *fakeUpstream {
	t.Helper()
	upstream := &fakeUpstream{}
	upstream.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream.calls.Add(1)
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " I was decanting the port, sir. "}}]
		}`))
	}))
	t.Cleanup(upstream.Close)
	return upstream
}

func lookupEnvFunc(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// startTestServer starts the server listening on a random port and stops it when the test finishes.
func startTestServer(t *testing.T, env map[string]string) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	merged := map[string]string{"RELAY_ADDR": "localhost:0"}
	for k, v := range env {
		merged[k] = v
	}
	server, err := e2etest.StartServer(ctx, io.Discard, lookupEnvFunc(merged), run)
	require.NoError(t, err)
	return server
}
