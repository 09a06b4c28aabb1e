package suspect

import (
	"bytes"
	"context"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/myrjola/suspectrelay/internal/relayclient"
	"github.com/stretchr/testify/require"
	"net/http"
	"strings"
	"testing"
)

type fakeAsker struct {
	requests  []relayclient.Request
	responses []*relayclient.Response
	err       error
}

func (f *fakeAsker) Ask(_ context.Context, question relayclient.Request) (*relayclient.Response, error) {
	f.requests = append(f.requests, question)
	if f.err != nil {
		return nil, f.err
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func answer(question, reply string, trust int) *relayclient.Response {
	return &relayclient.Response{
		StatusCode: http.StatusOK,
		Reply:      reply,
		Trust:      trust,
		AppendHistory: []dialogue.Turn{
			{Role: dialogue.RoleUser, Content: question},
			{Role: dialogue.RoleNPC, Content: reply},
		},
		Error: "",
	}
}

func TestSession_Run(t *testing.T) {
	asker := &fakeAsker{responses: []*relayclient.Response{
		answer("Where were you?", "In the pantry.", 50),
		{StatusCode: http.StatusBadGateway, Reply: dialogue.DeflectionReply, Error: "upstream unavailable"},
		answer("Please, the truth.", "Very well.", 51),
	}}
	s := &session{asker: asker, suspect: "Cook", trust: dialogue.DefaultTrust}
	var out bytes.Buffer

	err := s.run(context.Background(), strings.NewReader("Where were you?\n\nAnd then?\nPlease, the truth.\nexit\nignored\n"), &out)
	require.NoError(t, err)

	require.Len(t, asker.requests, 3)
	require.Empty(t, asker.requests[0].History)
	require.Len(t, asker.requests[1].History, 2)
	require.Len(t, asker.requests[2].History, 2, "failed turns are not added to the history")
	require.Equal(t, 50, asker.requests[2].Memory.Trust)

	require.Equal(t, 51, s.trust)
	require.Len(t, s.history, 4)
	require.Contains(t, out.String(), "Cook: In the pantry.")
	require.Contains(t, out.String(), "relay error: upstream unavailable")
	require.Contains(t, out.String(), "(trust 51)")
	require.Contains(t, out.String(), "Goodbye, detective.")
}

func TestSession_RunEndOfInput(t *testing.T) {
	s := &session{asker: &fakeAsker{}, suspect: "Butler", trust: dialogue.DefaultTrust}
	require.NoError(t, s.run(context.Background(), strings.NewReader(""), &bytes.Buffer{}))
}

func TestSession_RunTransportError(t *testing.T) {
	s := &session{asker: &fakeAsker{err: errors.New("connection refused")}, suspect: "Butler"}
	err := s.run(context.Background(), strings.NewReader("Hello?\n"), &bytes.Buffer{})
	require.ErrorContains(t, err, "connection refused")
}
