package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/domain/command"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
)

// NewSamplesCmd creates the samples command
func NewSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample queries",
		Long: `List the built-in sample queries.

Run one with 'mevlog-viewer search --sample <name>' or pick one
interactively with 'mevlog-viewer search --pick-sample'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			samples, err := app.ListSamples.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.Output != config.OutputTable {
				return render.Encode(cmd.OutOrStdout(), app.Config.Output, samples)
			}

			t := table.NewWriter()
			t.SetStyle(table.StyleLight)
			t.Style().Options.DrawBorder = false
			t.Style().Options.SeparateColumns = false
			t.AppendHeader(table.Row{"Name", "Description", "Command"})
			for _, s := range samples {
				t.AppendRow(table.Row{s.Name, s.Title, command.Build(command.ModeSearch, command.Params{SearchParams: s.Params})})
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
