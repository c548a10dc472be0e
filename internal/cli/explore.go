package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/cli/tui"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// NewExploreCmd creates the explore command
func NewExploreCmd() *cobra.Command {
	var (
		view  viewFlags
		noTUI bool
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the transactions of a single block",
		Long: `Explore every transaction of one block.

On an interactive terminal this opens the explorer: switch chains with the
chain selector, move between blocks, sort columns and expand transactions.
With --no-tui, --non-interactive or a json/yaml output the block is printed
once instead.`,
		Example: `  # Latest block on Ethereum
  mevlog-viewer explore

  # A specific Polygon block, printed as a table
  mevlog-viewer explore --chain-id 137 --block 65000000 --no-tui`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationStreaming: "true", annotationNoProgress: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			block, err := blockFlag(cmd, "block")
			if err != nil {
				return err
			}
			sortCfg, err := view.sortConfig()
			if err != nil {
				return err
			}

			if !noTUI && !app.Config.NonInteractive && app.Config.Output == config.OutputTable && isTerminal(cmd.OutOrStdout()) {
				return tui.RunExplorer(cmd.Context(), app, tui.ExplorerOptions{
					Block:    block,
					Sort:     sortCfg,
					PrintURL: printURL(cmd),
				}, cmd.OutOrStdout())
			}

			state := viewer.NewState()
			unsubscribe := app.Hub.Subscribe(state)
			defer unsubscribe()

			result, err := app.ExploreBlock.Run(cmd.Context(), usecase.ExploreBlockParams{
				Block:         block,
				WithChainInfo: true,
			})
			if err != nil {
				return err
			}
			if result.ChainInfoErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(result.ChainInfoErr.Error()))
			}

			if app.Config.Output == config.OutputTable {
				fmt.Fprintln(cmd.OutOrStdout(), exploreTitle(result))
			}

			return renderTransactions(cmd, app, state, listOutput{
				sort:    sortCfg,
				expand:  view.expand,
				command: result.Command,
				url:     result.URL,
			})
		},
	}

	view.register(cmd.Flags())
	cmd.Flags().String("block", "latest", "Block number to explore")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print the block instead of opening the explorer")

	return cmd
}

// exploreTitle is the heading above a printed block
func exploreTitle(result *usecase.ExploreBlockResult) string {
	block := "latest block"
	if result.Block != nil {
		block = "block #" + render.FormatNumber(*result.Block)
	}

	chain := fmt.Sprintf("chain %d", result.Target.ChainID)
	if result.Target.RPCURL != "" {
		chain = result.Target.RPCURL
	}
	if result.ChainInfo != nil {
		chain = result.ChainInfo.Name
	}

	return fmt.Sprintf("📦 %s on %s\n", block, chain)
}
