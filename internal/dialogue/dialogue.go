// Package dialogue turns a player's question to a murder-mystery suspect into a prompt for a language model and
// maps the model's answer back into an in-character reply with an updated trust score.
//
// Nothing is persisted: the caller is the system of record for the history and the trust score.
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/myrjola/suspectrelay/internal/errors"
	"log/slog"
	"strings"
)

var (
	// ErrMissingField is returned when the suspect name or the player question is absent.
	ErrMissingField = errors.NewSentinel("missing required field")
	// ErrMissingCredential is returned when no completion service is configured.
	ErrMissingCredential = errors.NewSentinel("completion service credential not configured")
	// ErrUpstream is returned when the completion service fails.
	ErrUpstream = errors.NewSentinel("completion service failed")
)

// FillerReply is used whenever the model has nothing usable to say, including all error paths.
const FillerReply = "I have nothing to say about that."

// DeflectionReply is used when the completion service is unavailable.
const DeflectionReply = "I... I'd rather not talk about that right now."

// Role of a conversation turn as seen by the game client.
type Role string

const (
	RoleUser Role = "user"
	RoleNPC  Role = "npc"
)

// Turn is one entry of the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CaseSummary describes the crime the suspect is questioned about.
type CaseSummary struct {
	Victim   string   `json:"victim"`
	Weapon   string   `json:"weapon"`
	Location string   `json:"location"`
	Suspects []string `json:"suspects"`
}

// Memory is the caller-held state of the suspect.
type Memory struct {
	Trust *float64 `json:"trust"`
}

// Question is the player's request.
//
// History entries are kept raw so that malformed entries can be dropped one by one instead of failing the whole
// request.
type Question struct {
	SuspectName    string            `json:"suspectName"`
	PlayerQuestion string            `json:"playerQuestion"`
	Case           *CaseSummary      `json:"case,omitempty"`
	Memory         *Memory           `json:"memory,omitempty"`
	History        []json.RawMessage `json:"history,omitempty"`
}

// UnmarshalJSON decodes the optional case, memory and history leniently. A value of the wrong shape is treated as
// absent, so only the required fields can reject a question.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw struct {
		SuspectName    string          `json:"suspectName"`
		PlayerQuestion string          `json:"playerQuestion"`
		Case           json.RawMessage `json:"case"`
		Memory         json.RawMessage `json:"memory"`
		History        json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "unmarshal question")
	}

	var history []json.RawMessage
	if err := json.Unmarshal(raw.History, &history); err != nil {
		history = nil
	}
	*q = Question{
		SuspectName:    raw.SuspectName,
		PlayerQuestion: raw.PlayerQuestion,
		Case:           decodeCase(raw.Case),
		Memory:         decodeMemory(raw.Memory),
		History:        history,
	}
	return nil
}

// decodeCase keeps the well-typed fields of a case summary and drops the rest.
func decodeCase(data json.RawMessage) *CaseSummary {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil
	}
	var c CaseSummary
	_ = json.Unmarshal(fields["victim"], &c.Victim)
	_ = json.Unmarshal(fields["weapon"], &c.Weapon)
	_ = json.Unmarshal(fields["location"], &c.Location)

	var suspects []json.RawMessage
	_ = json.Unmarshal(fields["suspects"], &suspects)
	for _, s := range suspects {
		var name string
		if err := json.Unmarshal(s, &name); err == nil {
			c.Suspects = append(c.Suspects, name)
		}
	}
	return &c
}

// decodeMemory returns nil unless memory carries a numeric trust.
func decodeMemory(data json.RawMessage) *Memory {
	var fields struct {
		Trust json.RawMessage `json:"trust"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	var trust *float64
	if err := json.Unmarshal(fields.Trust, &trust); err != nil || trust == nil {
		return nil
	}
	return &Memory{Trust: trust}
}

// Answer is the suspect's reply together with the state the caller should persist.
type Answer struct {
	Reply         string `json:"reply"`
	Trust         int    `json:"trust"`
	AppendHistory []Turn `json:"appendHistory"`
}

// Completer produces the next assistant message for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Service answers questions on behalf of suspects.
type Service struct {
	completer    Completer
	historyLimit int
}

// NewService creates a Service. completer may be nil, in which case every question fails with
// ErrMissingCredential without any outbound call. historyLimit caps how many of the most recent history turns are
// replayed to the model, 0 meaning no cap.
func NewService(completer Completer, historyLimit int) *Service {
	return &Service{
		completer:    completer,
		historyLimit: historyLimit,
	}
}

// CompleterConfigured reports whether questions can reach a completion service.
func (s *Service) CompleterConfigured() bool {
	return s.completer != nil
}

// Reply asks the suspect the player's question.
func (s *Service) Reply(ctx context.Context, q Question) (Answer, error) {
	suspectName := strings.TrimSpace(q.SuspectName)
	playerQuestion := strings.TrimSpace(q.PlayerQuestion)
	if suspectName == "" {
		return Answer{}, errors.Wrap(ErrMissingField, "validate question", slog.String("field", "suspectName"))
	}
	if playerQuestion == "" {
		return Answer{}, errors.Wrap(ErrMissingField, "validate question", slog.String("field", "playerQuestion"))
	}
	if s.completer == nil {
		return Answer{}, errors.Wrap(ErrMissingCredential, "reply")
	}

	trust, hasTrust := q.Memory.trust()
	messages := BuildMessages(Prompt{
		SuspectName:    suspectName,
		PlayerQuestion: playerQuestion,
		Case:           q.Case,
		Trust:          trust,
		HasTrust:       hasTrust,
		History:        TranslateHistory(q.History, s.historyLimit),
	})

	text, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return Answer{}, errors.Wrap(fmt.Errorf("%w: %w", ErrUpstream, err), "complete dialogue",
			slog.String("suspect", suspectName))
	}
	reply := strings.TrimSpace(text)
	if reply == "" {
		reply = FillerReply
	}

	return Answer{
		Reply: reply,
		Trust: AdjustTrust(trust, playerQuestion),
		AppendHistory: []Turn{
			{Role: RoleUser, Content: playerQuestion},
			{Role: RoleNPC, Content: reply},
		},
	}, nil
}
