package dialogue_test

import (
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestBuildMessages(t *testing.T) {
	history := []dialogue.Message{
		{Role: dialogue.MessageRoleUser, Content: "Hello."},
		{Role: dialogue.MessageRoleAssistant, Content: "Good evening, detective."},
	}
	messages := dialogue.BuildMessages(dialogue.Prompt{
		SuspectName:    "Butler",
		PlayerQuestion: "Where were you at 9pm?",
		History:        history,
	})

	require.Len(t, messages, 4)
	require.Equal(t, dialogue.MessageRoleSystem, messages[0].Role)
	require.Contains(t, messages[0].Content, "You are Butler")
	require.NotContains(t, messages[0].Content, "Case:")
	require.NotContains(t, messages[0].Content, "trust")
	require.Equal(t, history, messages[1:3])
	require.Equal(t, dialogue.Message{Role: dialogue.MessageRoleUser, Content: "Where were you at 9pm?"}, messages[3])
}

func TestSystemInstruction(t *testing.T) {
	instruction := dialogue.SystemInstruction(dialogue.Prompt{
		SuspectName: "Miss Scarlet",
		Case: &dialogue.CaseSummary{
			Victim:   "Dr. Black",
			Weapon:   "the candlestick",
			Location: "the conservatory",
			Suspects: []string{"Miss Scarlet", " ", "Colonel Mustard"},
		},
		Trust:    20,
		HasTrust: true,
	})

	require.Contains(t, instruction, "You are Miss Scarlet")
	require.Contains(t, instruction, "The victim is Dr. Black.")
	require.Contains(t, instruction, "The murder weapon is the candlestick.")
	require.Contains(t, instruction, "The body was found in the conservatory.")
	require.Contains(t, instruction, "The suspects are Miss Scarlet, Colonel Mustard.")
	require.Contains(t, instruction, "Your trust in the detective is 20 out of 100.")
}

func TestSystemInstruction_EmptyCase(t *testing.T) {
	instruction := dialogue.SystemInstruction(dialogue.Prompt{
		SuspectName: "Butler",
		Case:        &dialogue.CaseSummary{},
	})
	require.NotContains(t, instruction, "Case:")
}
