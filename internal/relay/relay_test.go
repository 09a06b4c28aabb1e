package relay_test

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/envstruct"
	"github.com/myrjola/suspectrelay/internal/relay"
	"github.com/myrjola/suspectrelay/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// newCountingUpstream fakes the chat completions API and counts the calls it receives.
func newCountingUpstream(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Nobody saw me."}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func lookupEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestNew(t *testing.T) {
	upstream, calls := newCountingUpstream(t)
	handler, err := relay.New(context.Background(), testhelpers.NewLogger(io.Discard), lookupEnv(map[string]string{
		"OPENAI_API_KEY":  "test-key",
		"OPENAI_BASE_URL": upstream.URL,
	}))
	require.NoError(t, err)

	rec, resp := serve(t, handler, http.MethodPost, `{"suspectName":"Butler","playerQuestion":"Where were you?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Nobody saw me.", resp.Reply)
	require.Equal(t, int32(1), calls.Load())
}

func TestNew_MissingCredential(t *testing.T) {
	upstream, calls := newCountingUpstream(t)
	handler, err := relay.New(context.Background(), testhelpers.NewLogger(io.Discard), lookupEnv(map[string]string{
		"OPENAI_BASE_URL": upstream.URL,
	}))
	require.NoError(t, err)

	rec, resp := serve(t, handler, http.MethodPost, `{"suspectName":"Butler","playerQuestion":"Where were you?"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotEmpty(t, resp.Reply)
	require.Zero(t, calls.Load())
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := relay.New(context.Background(), testhelpers.NewLogger(io.Discard), lookupEnv(map[string]string{
		"RELAY_MAX_TOKENS": "lots",
	}))
	require.ErrorIs(t, err, envstruct.ErrInvalidValue)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := relay.LoadConfig(lookupEnv(nil))
	require.NoError(t, err)
	require.Equal(t, int64(65536), cfg.MaxBodyBytes)
	require.Equal(t, 20, cfg.HistoryLimit)
	require.Equal(t, "openai", cfg.AI.Provider)
	require.Equal(t, 150, cfg.AI.MaxTokens)
	require.InDelta(t, 0.8, cfg.AI.Temperature, 0.0001)
	require.Empty(t, cfg.AI.OpenAIAPIKey)
}
