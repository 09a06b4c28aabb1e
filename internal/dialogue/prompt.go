package dialogue

import (
	"fmt"
	"strings"
)

// MessageRole is the role of a message sent to the language model.
type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is one entry of the conversation sent to the language model.
type Message struct {
	Role    MessageRole
	Content string
}

// Prompt holds everything the system instruction and conversation are built from.
type Prompt struct {
	SuspectName    string
	PlayerQuestion string
	Case           *CaseSummary
	Trust          int
	// HasTrust tells whether the caller supplied a trust score. The trust line is only added when it did.
	HasTrust bool
	History  []Message
}

const personaTemplate = `You are %s, a suspect in a murder mystery game, being questioned by the detective.
Stay in character at all times and answer in one to three short sentences.
Never break character, and never mention that you are an AI or that this is a game.
Never reveal who committed the murder, or whether you did, unless the detective correctly accuses the culprit.
Only talk about people, places, and objects that belong to this case. If you don't know something, say so in character.`

// BuildMessages assembles the conversation for the language model: the system instruction first, then the
// history, and the player's question last.
func BuildMessages(p Prompt) []Message {
	messages := make([]Message, 0, len(p.History)+2) //nolint:mnd // system instruction and question
	messages = append(messages, Message{Role: MessageRoleSystem, Content: SystemInstruction(p)})
	messages = append(messages, p.History...)
	messages = append(messages, Message{Role: MessageRoleUser, Content: p.PlayerQuestion})
	return messages
}

// SystemInstruction describes the persona, the case, and the suspect's attitude towards the detective.
func SystemInstruction(p Prompt) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(personaTemplate, p.SuspectName))
	if line := caseLine(p.Case); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if p.HasTrust {
		b.WriteString("\n")
		b.WriteString(trustLine(p.Trust))
	}
	return b.String()
}

func caseLine(c *CaseSummary) string {
	if c == nil {
		return ""
	}
	var parts []string
	if v := strings.TrimSpace(c.Victim); v != "" {
		parts = append(parts, fmt.Sprintf("The victim is %s.", v))
	}
	if w := strings.TrimSpace(c.Weapon); w != "" {
		parts = append(parts, fmt.Sprintf("The murder weapon is %s.", w))
	}
	if l := strings.TrimSpace(c.Location); l != "" {
		parts = append(parts, fmt.Sprintf("The body was found in %s.", l))
	}
	var suspects []string
	for _, s := range c.Suspects {
		if s = strings.TrimSpace(s); s != "" {
			suspects = append(suspects, s)
		}
	}
	if len(suspects) > 0 {
		parts = append(parts, fmt.Sprintf("The suspects are %s.", strings.Join(suspects, ", ")))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Case: " + strings.Join(parts, " ")
}

func trustLine(trust int) string {
	return fmt.Sprintf("Your trust in the detective is %d out of 100. "+
		"The lower it is, the more guarded and evasive you are. The higher it is, the more forthcoming you are.", trust)
}
