// Package relay exposes the suspect dialogue over HTTP.
//
// The same [Handler] serves the long-running web server, the serverless function in api/, and the AWS Lambda entry
// point.
package relay

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/ai"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/envstruct"
	"github.com/myrjola/suspectrelay/internal/errors"
	"log/slog"
)

// Config holds the relay settings read from the environment.
type Config struct {
	MaxBodyBytes int64 `env:"RELAY_MAX_BODY_BYTES" envDefault:"65536"`
	HistoryLimit int   `env:"RELAY_HISTORY_LIMIT" envDefault:"20"`
	AI           ai.Config
}

// LoadConfig reads Config using lookupEnv, which has the same signature as [os.LookupEnv].
func LoadConfig(lookupEnv func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return Config{}, errors.Wrap(err, "populate relay config")
	}
	if err := envstruct.Populate(&cfg.AI, lookupEnv); err != nil {
		return Config{}, errors.Wrap(err, "populate ai config")
	}
	return cfg, nil
}

// New creates the relay handler from the environment.
//
// A missing completion credential is not an error here: the handler starts and answers every question with a
// server error until the credential is configured.
func New(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) (*Handler, error) {
	cfg, err := LoadConfig(lookupEnv)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	completer, err := ai.NewCompleter(ctx, cfg.AI, nil)
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		logger.LogAttrs(ctx, slog.LevelWarn, "completion credential missing, questions will be rejected",
			errors.SlogError(err))
		completer = nil
	case err != nil:
		return nil, errors.Wrap(err, "new completer")
	}

	service := dialogue.NewService(completer, cfg.HistoryLimit)
	return NewHandler(service, logger, cfg.MaxBodyBytes), nil
}
