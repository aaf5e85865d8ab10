package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/server"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show live server gauges",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status server.Status
			if err := getJSON(cfg.HTTPURL+"/api/v1/status", &status); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(status)
			return nil
		},
	}

	cmd.AddCommand(newStatusUserCmd())
	return cmd
}

func newStatusUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <name>",
		Short: "Look up a user's stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var user model.User
			if err := getJSON(cfg.HTTPURL+"/api/v1/users/"+args[0], &user); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(user)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := httpClient.Get(cfg.HTTPURL + "/healthz")
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusNoContent {
				return fmt.Errorf("unhealthy: %s", resp.Status)
			}
			NewOutput(cfg.Output).PrintMessage("ok")
			return nil
		},
	}
}

func getJSON(url string, v any) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
