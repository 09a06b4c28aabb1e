package main

import (
	"context"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/myrjola/suspectrelay/internal/logging"
	"github.com/myrjola/suspectrelay/internal/relay"
	"log/slog"
	"net/http"
	"os"
)

// gateway serves API Gateway HTTP API (payload format 2.0) events with an [http.Handler].
type gateway struct {
	core.RequestAccessorV2
	handler http.Handler
	logger  *slog.Logger
}

func newGateway(handler http.Handler, logger *slog.Logger) *gateway {
	return &gateway{
		RequestAccessorV2: core.RequestAccessorV2{},
		handler:           handler,
		logger:            logger,
	}
}

func (g *gateway) handle(
	ctx context.Context,
	event events.APIGatewayV2HTTPRequest,
) (events.APIGatewayV2HTTPResponse, error) {
	w := core.NewProxyResponseWriterV2()

	r, err := g.EventToRequestWithContext(ctx, event)
	if err != nil {
		// Answer like the relay does so that the browser still sees CORS headers and a reply.
		err = errors.Wrap(err, "convert gateway event", slog.String("path", event.RawPath))
		g.logger.LogAttrs(ctx, slog.LevelWarn, "invalid gateway event", errors.SlogError(err))
		relay.SetCORSHeaders(w.Header())
		relay.WriteError(w, http.StatusBadRequest, "invalid request body")
	} else {
		g.handler.ServeHTTP(w, r)
	}

	resp, err := w.GetProxyResponse()
	if err != nil {
		return core.GatewayTimeoutV2(), errors.Wrap(err, "get proxy response")
	}
	return resp, nil
}

func main() {
	ctx := context.Background()
	logger := logging.NewLogger(os.Stdout, slog.LevelInfo, nil)

	h, err := relay.New(ctx, logger, os.LookupEnv)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure creating relay", errors.SlogError(err))
		os.Exit(1)
	}

	lambda.Start(newGateway(h, logger).handle)
}
