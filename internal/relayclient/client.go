// Package relayclient talks to a deployed suspect dialogue relay.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// SuspectReplyPath is where the relay listens for questions.
const SuspectReplyPath = "/api/suspect-reply"

// Memory is the suspect state the caller keeps between questions.
type Memory struct {
	Trust int `json:"trust"`
}

// Request is a question to a suspect.
type Request struct {
	SuspectName    string                `json:"suspectName"`
	PlayerQuestion string                `json:"playerQuestion"`
	Case           *dialogue.CaseSummary `json:"case,omitempty"`
	Memory         *Memory               `json:"memory,omitempty"`
	History        []dialogue.Turn       `json:"history,omitempty"`
}

// Response is the relay's answer. Error is set on non-success responses, Trust and AppendHistory only on success.
type Response struct {
	StatusCode    int             `json:"-"`
	Reply         string          `json:"reply"`
	Trust         int             `json:"trust"`
	AppendHistory []dialogue.Turn `json:"appendHistory"`
	Error         string          `json:"error"`
}

type Client struct {
	client *http.Client
	url    string
}

// New creates a client for the relay at url. httpClient may be nil.
func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &Client{
		client: httpClient,
		url:    url,
	}
}

// URL returns the base URL of the relay.
func (c *Client) URL() string {
	return c.url
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Ask sends a question to the suspect.
//
// Non-success statuses are not errors as long as the relay answered with JSON; inspect Response.StatusCode.
func (c *Client) Ask(ctx context.Context, question Request) (*Response, error) {
	var (
		err  error
		body []byte
		req  *http.Request
		resp *http.Response
	)
	if body, err = json.Marshal(question); err != nil {
		return nil, errors.Wrap(err, "marshal question")
	}
	if req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.url+SuspectReplyPath,
		bytes.NewReader(body)); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var answer Response
	if err = json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, errors.Wrap(err, "decode response", slog.Int("status", resp.StatusCode))
	}
	answer.StatusCode = resp.StatusCode
	return &answer, nil
}

// Preflight sends the CORS pre-flight request a browser would send before Ask.
func (c *Client) Preflight(ctx context.Context, origin string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = http.NewRequestWithContext(ctx, http.MethodOptions, c.url+SuspectReplyPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	// The pre-flight response has no body, drain it so that the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	if err = resp.Body.Close(); err != nil {
		return nil, errors.Wrap(err, "close response body")
	}
	return resp, nil
}
