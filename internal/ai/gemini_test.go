package ai_test

import (
	"context"
	"encoding/json"
	"github.com/myrjola/suspectrelay/internal/ai"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type generateContentRequest struct {
	SystemInstruction struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Role string `json:"role"`
	} `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int     `json:"maxOutputTokens"`
		Temperature     float64 `json:"temperature"`
	} `json:"generationConfig"`
}

func newGeminiUpstream(t *testing.T, status int, body string, requests chan<- generateContentRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+ai.DefaultGeminiModel+":generateContent"), r.URL.Path)
		var req generateContentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if requests != nil {
			requests <- req
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGeminiClient(t *testing.T, srv *httptest.Server) *ai.GeminiClient {
	t.Helper()
	client, err := ai.NewGeminiClient(context.Background(), ai.Config{ //nolint:exhaustruct // defaults are fine
		GeminiAPIKey:  "test-key",
		GeminiBaseURL: srv.URL + "/",
		MaxTokens:     150,
		Temperature:   0.8,
	}, srv.Client())
	require.NoError(t, err)
	return client
}

func TestGeminiClient_Complete(t *testing.T) {
	requests := make(chan generateContentRequest, 1)
	srv := newGeminiUpstream(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "In the pantry."}]}, "finishReason": "STOP"}]
	}`, requests)

	reply, err := newGeminiClient(t, srv).Complete(context.Background(), testMessages)
	require.NoError(t, err)
	require.Equal(t, "In the pantry.", reply)

	req := <-requests
	require.Len(t, req.SystemInstruction.Parts, 1)
	require.Equal(t, "You are Butler.", req.SystemInstruction.Parts[0].Text)
	require.Len(t, req.Contents, 3)
	require.Equal(t, "model", req.Contents[1].Role)
	require.Equal(t, 150, req.GenerationConfig.MaxOutputTokens)
	require.InDelta(t, 0.8, req.GenerationConfig.Temperature, 0.001)
}

func TestGeminiClient_CompleteUpstreamError(t *testing.T) {
	srv := newGeminiUpstream(t, http.StatusBadRequest,
		`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`, nil)

	_, err := newGeminiClient(t, srv).Complete(context.Background(), testMessages)
	require.Error(t, err)
	attrs := errors.SlogError(err).Value.Group()
	require.Contains(t, attrs, slog.Int("upstream_status", http.StatusBadRequest))
	require.Contains(t, attrs, slog.String("upstream_type", "INVALID_ARGUMENT"))
	require.Contains(t, attrs, slog.String("upstream_body", "API key not valid"))
}
