package cli

import (
	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	var (
		form       searchFlags
		view       viewFlags
		resume     bool
		appendMode bool
		sampleName string
		pickSample bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Stream transactions matching a query",
		Long: `Search transactions through the mevlog backend.

Results are streamed over a websocket; each message replaces the list unless
--append is given. Unset fields are not sent. The last search is stored in the
local config and can be rerun with --resume, optionally overriding fields.`,
		Example: `  # Transactions of the last 10 blocks calling swap methods
  mevlog-viewer search -b 10:latest --method swap

  # Top of block transactions on Base, most expensive first
  mevlog-viewer search -b 5:latest -p 0 --chain-id 8453 --sort tx_cost --desc

  # Run a built-in sample
  mevlog-viewer search --sample pepe

  # Rerun the previous search on a different range
  mevlog-viewer search --resume -b 100:latest`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationStreaming: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			sortCfg, err := view.sortConfig()
			if err != nil {
				return err
			}

			query := form.query(cmd)
			if sampleName != "" || pickSample {
				sample, err := app.SelectSample.Run(cmd.Context(), usecase.SelectSampleParams{
					Name:           sampleName,
					NonInteractive: app.Config.NonInteractive,
				})
				if err != nil {
					return err
				}
				// the sample replaces the form; explicit flags still win
				query = form.overlay(cmd, sample.Params)
			}

			state := viewer.NewState()
			unsubscribe := app.Hub.Subscribe(state)
			defer unsubscribe()

			result, err := app.SearchTransactions.Run(cmd.Context(), usecase.SearchTransactionsParams{
				Query:      query,
				Resume:     resume,
				Append:     appendMode,
				Transcript: render.NewTranscriptRenderer(transcriptWriter(cmd, app.Config)),
			})
			if err != nil {
				return err
			}

			return renderTransactions(cmd, app, state, listOutput{
				sort:       sortCfg,
				expand:     view.expand,
				showBlocks: true,
				command:    result.Command,
				url:        result.URL,
			})
		},
	}

	form.register(cmd.Flags())
	view.register(cmd.Flags())
	cmd.Flags().BoolVar(&resume, "resume", false, "Rerun the last search, overriding the given fields")
	cmd.Flags().BoolVar(&appendMode, "append", false, "Accumulate streamed batches instead of replacing the list")
	cmd.Flags().StringVar(&sampleName, "sample", "", "Run a built-in sample query (see 'samples')")
	cmd.Flags().BoolVar(&pickSample, "pick-sample", false, "Choose a sample query interactively")
	cmd.MarkFlagsMutuallyExclusive("sample", "pick-sample")
	cmd.MarkFlagsMutuallyExclusive("resume", "sample")

	return cmd
}
