package main

import (
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"net/http"
	"time"
)

const timeoutBody = `{"reply":"` + dialogue.FillerReply + `","error":"timeout"}`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
// The deadline is also propagated to the completion call through the request context.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// We want the timeout to be a little shorter than the server's write timeout so that the
	// timeout handler has a chance to respond before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	timeout := http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timeout.ServeHTTP(timeoutWriter{ResponseWriter: w}, r)
	})
}

// timeoutWriter labels the timeout body as JSON. [http.TimeoutHandler] writes it without a content type.
type timeoutWriter struct {
	http.ResponseWriter
}

func (w timeoutWriter) WriteHeader(status int) {
	if status == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w timeoutWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
