package main

import (
	"github.com/justinas/alice"
	"github.com/myrjola/suspectrelay/internal/relayclient"
	"net/http"
	"time"
)

func (app *application) routes(timeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	// The relay handles pre-flight and method checks itself so that its responses match the serverless deployments.
	mux.Handle(relayclient.SuspectReplyPath, app.relay)
	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.HandleFunc("/", app.notFound)

	common := alice.New(app.recoverPanic, app.requestID, app.logRequest, corsHeaders, secureHeaders)
	return common.Then(timeoutHandler(mux, timeout))
}
