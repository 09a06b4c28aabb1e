package dialogue_test

import (
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestAdjustTrust(t *testing.T) {
	tests := []struct {
		name     string
		trust    int
		question string
		want     int
	}{
		{name: "no trigger words", trust: 50, question: "Where were you at 9pm?", want: 50},
		{name: "polite", trust: 50, question: "Could you please tell me where you were?", want: 51},
		{name: "polite is case-insensitive", trust: 50, question: "PLEASE, I need to know.", want: 51},
		{name: "asking for help", trust: 10, question: "Can you help me find the culprit?", want: 11},
		{name: "confrontational", trust: 50, question: "Confess now!", want: 49},
		{name: "liar", trust: 50, question: "You're a LIAR.", want: 49},
		{name: "admit", trust: 50, question: "Just admit it.", want: 49},
		{name: "polite capped at max", trust: 100, question: "Thank you, sir.", want: 100},
		{name: "confrontational floored at min", trust: 0, question: "Confess!", want: 0},
		{name: "both cancel out", trust: 50, question: "Please, just confess.", want: 50},
		{name: "both at max steps down", trust: 100, question: "Please confess.", want: 99},
		{name: "both at min steps up", trust: 0, question: "Please confess.", want: 0},
		{name: "substring inside a longer word", trust: 50, question: "Were you displeased with him?", want: 51},
		{name: "out of range input is clamped", trust: 250, question: "Where were you?", want: 100},
		{name: "negative input is clamped", trust: -5, question: "Where were you?", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, dialogue.AdjustTrust(tt.trust, tt.question))
		})
	}
}

func TestAdjustTrust_StaysWithinBounds(t *testing.T) {
	questions := []string{"", "please", "confess", "please confess", "thank you, liar"}
	for trust := -10; trust <= 110; trust++ {
		for _, q := range questions {
			got := dialogue.AdjustTrust(trust, q)
			require.GreaterOrEqual(t, got, dialogue.MinTrust)
			require.LessOrEqual(t, got, dialogue.MaxTrust)
			require.LessOrEqual(t, abs(got-dialogue.ClampTrust(trust)), 1)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
