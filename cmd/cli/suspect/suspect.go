// Package suspect contains the commands for questioning suspects through a running relay.
package suspect

import (
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/relayclient"
	"github.com/spf13/cobra"
	"os"
	"strings"
)

var Group = &cobra.Group{
	ID:    "suspect",
	Title: "Suspect interrogation",
}

const defaultURL = "http://localhost:4000"

func init() {
	for _, cmd := range []*cobra.Command{Ask, Chat} {
		cmd.Flags().String("url", relayURL(), "base URL of the relay, defaults to $RELAY_URL")
		cmd.Flags().String("suspect", "", "name of the suspect to question")
		cmd.Flags().String("victim", "", "name of the victim")
		cmd.Flags().String("weapon", "", "murder weapon")
		cmd.Flags().String("location", "", "where the body was found")
		cmd.Flags().StringSlice("suspects", nil, "everyone under suspicion")
		_ = cmd.MarkFlagRequired("suspect")
	}
	Ask.Flags().Int("trust", dialogue.DefaultTrust, "how much the suspect trusts the detective, 0-100")
}

func relayURL() string {
	if url, ok := os.LookupEnv("RELAY_URL"); ok && url != "" {
		return url
	}
	return defaultURL
}

// newClient reads the flags shared by every suspect command.
func newClient(cmd *cobra.Command) (*relayclient.Client, error) {
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, err //nolint:wrapcheck // cobra flag errors are descriptive enough
	}
	return relayclient.New(strings.TrimSuffix(url, "/"), nil), nil
}

// caseSummary returns nil when no case flag is set so that the relay skips the case context.
func caseSummary(cmd *cobra.Command) *dialogue.CaseSummary {
	var (
		victim, _   = cmd.Flags().GetString("victim")
		weapon, _   = cmd.Flags().GetString("weapon")
		location, _ = cmd.Flags().GetString("location")
		suspects, _ = cmd.Flags().GetStringSlice("suspects")
	)
	if victim == "" && weapon == "" && location == "" && len(suspects) == 0 {
		return nil
	}
	return &dialogue.CaseSummary{
		Victim:   victim,
		Weapon:   weapon,
		Location: location,
		Suspects: suspects,
	}
}
