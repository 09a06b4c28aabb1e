package ai

import (
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"testing"
)

func TestGeminiContents(t *testing.T) {
	system, contents := geminiContents([]dialogue.Message{
		{Role: dialogue.MessageRoleSystem, Content: "You are Butler."},
		{Role: dialogue.MessageRoleUser, Content: "Hello."},
		{Role: dialogue.MessageRoleAssistant, Content: "Good evening."},
		{Role: dialogue.MessageRoleUser, Content: "Where were you?"},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	require.Equal(t, "You are Butler.", system.Parts[0].Text)

	require.Len(t, contents, 3)
	require.EqualValues(t, genai.RoleUser, contents[0].Role)
	require.EqualValues(t, genai.RoleModel, contents[1].Role)
	require.Equal(t, "Good evening.", contents[1].Parts[0].Text)
	require.EqualValues(t, genai.RoleUser, contents[2].Role)
}

func TestGeminiContents_NoSystemMessage(t *testing.T) {
	system, contents := geminiContents([]dialogue.Message{
		{Role: dialogue.MessageRoleUser, Content: "Hello."},
	})
	require.Nil(t, system)
	require.Len(t, contents, 1)
}
