package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <scorecard-id>",
	Short: "Show one college by its Scorecard ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid scorecard id %q", args[0])
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		college, ok, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("college %d not found", id)
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), college)
		}
		renderCollege(cmd.OutOrStdout(), college)
		return nil
	},
}
