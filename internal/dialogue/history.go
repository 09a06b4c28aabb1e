package dialogue

import (
	"encoding/json"
	"strings"
)

// TranslateHistory converts the caller's history into model messages.
//
// Entries that are not objects with string role and content, have blank content, or have a role other than
// "user" or "npc" are dropped. limit keeps only the most recent valid entries, 0 keeps all.
func TranslateHistory(history []json.RawMessage, limit int) []Message {
	messages := make([]Message, 0, len(history))
	for _, raw := range history {
		var entry struct {
			Role    *string `json:"role"`
			Content *string `json:"content"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Role == nil || entry.Content == nil || strings.TrimSpace(*entry.Content) == "" {
			continue
		}
		var role MessageRole
		switch Role(*entry.Role) {
		case RoleUser:
			role = MessageRoleUser
		case RoleNPC:
			role = MessageRoleAssistant
		default:
			continue
		}
		messages = append(messages, Message{Role: role, Content: *entry.Content})
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages
}
