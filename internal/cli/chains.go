package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// NewChainsCmd creates the chains command
func NewChainsCmd() *cobra.Command {
	var (
		ids   []uint
		limit int
	)

	cmd := &cobra.Command{
		Use:   "chains [filter]",
		Short: "Look chains up in the registry",
		Long: `Look chains up by name or ID.

Without a filter the list of popular chains is shown. A filter made of
digits is treated as a chain ID.`,
		Example: `  mevlog-viewer chains
  mevlog-viewer chains arbitrum
  mevlog-viewer chains --id 1 --id 8453`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListChainsParams{Limit: limit}
			for _, id := range ids {
				params.ChainIDs = append(params.ChainIDs, uint64(id))
			}
			if len(args) == 1 {
				if id, err := strconv.ParseUint(args[0], 10, 64); err == nil {
					params.ChainIDs = append(params.ChainIDs, id)
				} else {
					params.Filter = args[0]
				}
			}

			result, err := app.ListChains.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.Output != config.OutputTable {
				return render.Encode(cmd.OutOrStdout(), app.Config.Output, result.Chains)
			}
			return render.NewChainsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().UintSliceVar(&ids, "id", nil, "Chain ID to look up (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of chains to return")

	return cmd
}

// NewChainInfoCmd creates the chain-info command
func NewChainInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain-info",
		Short: "Show the metadata of the selected chain",
		Example: `  mevlog-viewer chain-info --chain-id 137
  mevlog-viewer chain-info --rpc-url http://localhost:8545`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			info, err := app.GetChainInfo.Run(cmd.Context(), usecase.GetChainInfoParams{})
			if err != nil {
				return err
			}

			if app.Config.Output != config.OutputTable {
				return render.Encode(cmd.OutOrStdout(), app.Config.Output, info)
			}
			return render.NewChainInfoRenderer(cmd.OutOrStdout()).Render(info)
		},
	}
}
