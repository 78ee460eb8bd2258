package main

import (
	"io"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statesCmd)
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List state codes accepted by --state.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), domain.USStates)
		}
		renderStates(cmd.OutOrStdout(), domain.USStates)
		return nil
	},
}

func renderStates(w io.Writer, states []domain.State) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Code", "State"})
	for _, s := range states {
		t.AppendRow(table.Row{s.Code, s.Name})
	}
	t.SetCaption("DC and territory codes such as PR and GU are also accepted.")
	t.Render()
}
