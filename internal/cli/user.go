package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoryxin/battlechess/internal/protocol"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account commands over the game protocol",
	}

	cmd.AddCommand(newUserSignUpCmd())
	cmd.AddCommand(newUserSignInCmd())

	return cmd
}

func newUserSignUpCmd() *cobra.Command {
	var name, pass string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerAddr)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			reply, err := client.SignUp(name, pass)
			if err != nil {
				return err
			}
			if reply.Result != protocol.ResultSuccess {
				return fmt.Errorf("signup failed: %s", reply.Reason)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("registered %s", reply.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newUserSignInCmd() *cobra.Command {
	var name, pass string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Verify an account's credentials",
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

			NewOutput(cfg.Output).Print(*reply.User)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}
