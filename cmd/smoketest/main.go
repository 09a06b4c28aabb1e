package main

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/myrjola/suspectrelay/internal/logging"
	"github.com/myrjola/suspectrelay/internal/relayclient"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// TestSuspectReply runs the pre-flight and a single question the way a browser game would.
func TestSuspectReply(ctx context.Context, client *relayclient.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds, the model can be slow
	defer cancel()
	var (
		err       error
		preflight *http.Response
		answer    *relayclient.Response
	)

	if preflight, err = client.Preflight(ctx, "https://example.com"); err != nil {
		return errors.Wrap(err, "preflight")
	}
	if preflight.StatusCode != http.StatusNoContent {
		return errors.New("unexpected preflight status", slog.Int("status", preflight.StatusCode))
	}
	if origin := preflight.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		return errors.New("unexpected allowed origin", slog.String("origin", origin))
	}

	if answer, err = client.Ask(ctx, relayclient.Request{
		SuspectName:    "Butler",
		PlayerQuestion: "Please, where were you at 9pm?",
		Case:           nil,
		Memory:         &relayclient.Memory{Trust: 50}, //nolint:mnd // neutral trust
		History:        nil,
	}); err != nil {
		return errors.Wrap(err, "ask suspect")
	}
	if answer.StatusCode != http.StatusOK {
		return errors.New("unexpected suspect reply status",
			slog.Int("status", answer.StatusCode), slog.String("reason", answer.Error))
	}
	if answer.Trust != 51 || len(answer.AppendHistory) != 2 { //nolint:mnd // politeness earns one point
		return errors.New("unexpected suspect reply",
			slog.Int("trust", answer.Trust), slog.Int("history", len(answer.AppendHistory)))
	}
	return nil
}

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, nil)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   = relayclient.New(url, nil)
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if err := TestSuspectReply(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing suspect reply", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
