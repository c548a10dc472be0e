package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/domain/command"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// commandOutput is the encoded result of the command command
type commandOutput struct {
	Command string `json:"command" yaml:"command"`
	URL     string `json:"url" yaml:"url"`
}

// NewCommandCmd creates the command command, which prints the mevlog CLI
// equivalent of a query without running it
func NewCommandCmd() *cobra.Command {
	var (
		form    searchFlags
		explore bool
	)

	cmd := &cobra.Command{
		Use:   "command",
		Short: "Print the mevlog CLI command for a query without running it",
		Example: `  mevlog-viewer command -b 10:latest --event Transfer
  mevlog-viewer command --explore --block 21000000 --chain-id 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			query := form.query(cmd)
			if query.ChainID == "" && query.RPCURL == "" {
				query.ChainID = strconv.FormatUint(app.Config.ChainID, 10)
			}

			var out commandOutput
			if explore {
				block, err := blockFlag(cmd, "block")
				if err != nil {
					return err
				}
				params := command.Params{SearchParams: models.SearchParams{ChainID: query.ChainID}}
				chainID := app.Config.ChainID
				if block != nil {
					params.BlockNumber = strconv.FormatUint(*block, 10)
				}
				if id, err := strconv.ParseUint(query.ChainID, 10, 64); err == nil {
					chainID = id
				}
				out = commandOutput{
					Command: command.Build(command.ModeExplore, params),
					URL:     models.ExploreURL(chainID, block),
				}
			} else {
				out = commandOutput{
					Command: command.Build(command.ModeSearch, command.Params{SearchParams: query}),
					URL:     models.SearchURL(query),
				}
			}

			if app.Config.Output != config.OutputTable {
				return render.Encode(cmd.OutOrStdout(), app.Config.Output, out)
			}
			return render.NewCommandRenderer(cmd.OutOrStdout(), app.Config.BaseURL, printURL(cmd)).Render(out.Command, out.URL)
		},
	}

	form.register(cmd.Flags())
	cmd.Flags().BoolVar(&explore, "explore", false, "Build the explore command instead of a search")
	cmd.Flags().String("block", "latest", "Block number for --explore")

	return cmd
}
