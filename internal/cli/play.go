package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoryxin/battlechess/internal/protocol"
)

func newPlayCmd() *cobra.Command {
	var name, pass string
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Smoke-test matchmaking",
		Long: `play signs in, requests a match and waits for an opponent. When a match
starts it prints the assigned color and the opponent, then resigns. If no
opponent arrives before the wait expires it withdraws the match request.

Run it twice against the same server to pair the two invocations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerAddr)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			reply, err := client.SignIn(name, pass)
			if err != nil {
				return err
			}
			if reply.Result != protocol.ResultSuccess {
				return fmt.Errorf("signin failed: %s", reply.Reason)
			}

			if err := client.Send(protocol.NameRequest{Type: protocol.TypeMatch, Name: name}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("waiting up to %s for an opponent", wait))

			msg, err := client.Recv(wait)
			if err != nil {
				if errors.Is(err, os.ErrDeadlineExceeded) {
					// Withdraw so the next waiter does not pair with a client
					// that already gave up
					_ = client.Send(protocol.NameRequest{Type: protocol.TypeUnmatch, Name: name})
					out.PrintMessage("no opponent found, match request withdrawn")
					return nil
				}
				return err
			}
			if msg.Type != protocol.TypeInit {
				return fmt.Errorf("unexpected packet %q while waiting for a match", msg.Type)
			}

			var init protocol.InitPacket
			if err := msg.Decode(&init); err != nil {
				return err
			}
			out.PrintMessage(fmt.Sprintf("matched: playing %s against %s (credit %d, %s)",
				init.Color, init.You.Name, init.You.Credit, init.You.Title))

			// Resign right away; this is a connectivity check, not a game
			if err := client.Send(protocol.GiveUp{Type: protocol.TypeGiveUp}); err != nil {
				return err
			}
			return client.Send(protocol.EndGameRequest{Type: protocol.TypeEndGame})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "How long to wait for an opponent")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}
