// Package cli implements bcctl, the operator tool for the battle chess
// server. It speaks the game's TCP protocol for account and matchmaking
// checks and the ops HTTP API for health and gauges.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bcctl",
		Short: "Operator tool for the battle chess server",
		Long: `bcctl is an operator tool for the battle chess server.

It can register and verify accounts over the game's TCP protocol, smoke-test
matchmaking, and query the ops HTTP API for health and live gauges.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerAddr, "server", cfg.ServerAddr, "Game server TCP address (env: BCHESS_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.HTTPURL, "http", cfg.HTTPURL, "Ops API base URL (env: BCHESS_HTTP)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newTitleCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
