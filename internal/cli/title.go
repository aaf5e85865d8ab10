package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/memoryxin/battlechess/internal/model"
)

func newTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title <credit>",
		Short: "Show the title a credit score earns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credit, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(model.TitleForCredit(credit))
			return nil
		},
	}
}
