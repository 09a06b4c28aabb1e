package main

import (
	"context"
	"github.com/joho/godotenv"
	"github.com/myrjola/suspectrelay/internal/envstruct"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/myrjola/suspectrelay/internal/logging"
	"github.com/myrjola/suspectrelay/internal/pprofserver"
	"github.com/myrjola/suspectrelay/internal/relay"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

type application struct {
	logger *slog.Logger
	relay  *relay.Handler
}

type config struct {
	// Addr is the address the server listens on, port 0 picks a free port.
	Addr string `env:"RELAY_ADDR" envDefault:"localhost:4000"`
	// PprofAddr enables the pprof server on a loopback address when set.
	PprofAddr string `env:"RELAY_PPROF_ADDR" envDefault:""`
	// Timeout bounds reading, handling, and writing a request, including the completion call.
	Timeout time.Duration `env:"RELAY_TIMEOUT" envDefault:"30s"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err          error
		cfg          config
		relayHandler *relay.Handler
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if relayHandler, err = relay.New(ctx, logger, lookupEnv); err != nil {
		return errors.Wrap(err, "new relay")
	}

	if cfg.PprofAddr != "" {
		if err = pprofserver.Launch(ctx, cfg.PprofAddr, logger); err != nil {
			return errors.Wrap(err, "launch pprof server")
		}
	}

	app := application{
		logger: logger,
		relay:  relayHandler,
	}

	return app.configureAndStartServer(ctx, cfg.Addr, cfg.Timeout)
}

func main() {
	ctx := context.Background()
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, nil)

	// The .env file is optional, the environment can be provided by other means.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
