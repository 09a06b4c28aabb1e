// Package handler is the serverless function entry point, deployed at /api/suspect-reply.
package handler

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/myrjola/suspectrelay/internal/logging"
	"github.com/myrjola/suspectrelay/internal/relay"
	"log/slog"
	"net/http"
	"os"
	"sync"
)

var (
	initOnce     sync.Once
	relayHandler http.Handler
	logger       = logging.NewLogger(os.Stderr, slog.LevelInfo, nil)
)

// newHandler builds the relay once per cold start. Invalid configuration is answered with a 500 on every request
// rather than crashing the function, so that the game still gets a filler reply.
func newHandler(lookupEnv func(string) (string, bool)) http.Handler {
	ctx := context.Background()
	h, err := relay.New(ctx, logger, lookupEnv)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure creating relay", errors.SlogError(err))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			relay.SetCORSHeaders(w.Header())
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			relay.WriteError(w, http.StatusInternalServerError, "server misconfigured")
		})
	}
	return h
}

// Handler answers a player's question to a suspect.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		relayHandler = newHandler(os.LookupEnv)
	})
	relayHandler.ServeHTTP(w, r)
}
