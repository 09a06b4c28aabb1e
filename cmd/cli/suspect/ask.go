package suspect

import (
	"fmt"
	"github.com/myrjola/suspectrelay/internal/relayclient"
	"github.com/spf13/cobra"
	"strings"
)

var Ask = &cobra.Command{
	Use:     "ask [question]",
	GroupID: "suspect",
	Short:   "Ask a suspect a single question",
	Long:    `Sends one question to the relay and prints the suspect's reply and updated trust`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("suspect")
		trust, _ := cmd.Flags().GetInt("trust")

		resp, err := client.Ask(cmd.Context(), relayclient.Request{
			SuspectName:    name,
			PlayerQuestion: strings.Join(args, " "),
			Case:           caseSummary(cmd),
			Memory:         &relayclient.Memory{Trust: trust},
			History:        nil,
		})
		if err != nil {
			return fmt.Errorf("ask %s: %w", name, err)
		}
		if resp.Error != "" {
			return fmt.Errorf("relay answered %d %s: %s", resp.StatusCode, resp.Error, resp.Reply)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n(trust %d)\n", name, resp.Reply, resp.Trust)
		return nil
	},
}
