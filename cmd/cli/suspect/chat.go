package suspect

import (
	"bufio"
	"context"
	"fmt"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/relayclient"
	"github.com/spf13/cobra"
	"io"
	"strings"
)

var Chat = &cobra.Command{
	Use:     "chat",
	GroupID: "suspect",
	Short:   "Interrogate a suspect interactively",
	Long:    `Starts a conversation with a suspect. History and trust are kept between questions. Type 'exit' to quit.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("suspect")
		s := &session{
			asker:   client,
			suspect: name,
			cas:     caseSummary(cmd),
			trust:   dialogue.DefaultTrust,
			history: nil,
		}
		return s.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

type asker interface {
	Ask(ctx context.Context, question relayclient.Request) (*relayclient.Response, error)
}

// session keeps the conversation state that the relay itself does not store.
type session struct {
	asker   asker
	suspect string
	cas     *dialogue.CaseSummary
	trust   int
	history []dialogue.Turn
}

func (s *session) run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	_, _ = fmt.Fprintf(out, "Interrogating %s (type 'exit' to quit)\n", s.suspect)
	for {
		_, _ = fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read question: %w", err)
			}
			return nil
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			_, _ = fmt.Fprintln(out, "Goodbye, detective.")
			return nil
		}

		resp, err := s.asker.Ask(ctx, relayclient.Request{
			SuspectName:    s.suspect,
			PlayerQuestion: question,
			Case:           s.cas,
			Memory:         &relayclient.Memory{Trust: s.trust},
			History:        s.history,
		})
		if err != nil {
			return fmt.Errorf("ask %s: %w", s.suspect, err)
		}
		if resp.Error != "" {
			// The relay still sends an in-character reply, keep the conversation going.
			_, _ = fmt.Fprintf(out, "%s: %s\n(relay error: %s)\n", s.suspect, resp.Reply, resp.Error)
			continue
		}
		s.trust = resp.Trust
		s.history = append(s.history, resp.AppendHistory...)
		_, _ = fmt.Fprintf(out, "%s: %s\n(trust %d)\n", s.suspect, resp.Reply, s.trust)
	}
}
