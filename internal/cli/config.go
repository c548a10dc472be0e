package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mevlog-viewer local config",
		Long: `Manage the local config stored in ~/.mevlog-viewer/config.local.json

The config holds the default chain, backend URL and RPC URL used when the
matching flags are not given, plus the last search and explore queries.

Available subcommands:
  config           Show current config
  config set       Set a config value
  config remove    Remove a config value
  config pick      Choose the default chain interactively

When run without subcommands, displays the current config.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default action is to show config
			return showConfig(cmd)
		},
	}

	// Add subcommands
	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())
	cmd.AddCommand(NewConfigPickCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a config value.
Available keys: chain_id (chain), base_url (url), rpc_url (rpc)

Examples:
  mevlog-viewer config set chain_id 8453
  mevlog-viewer config set rpc_url https://base.llamarpc.com`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			}

			result, err := app.SetConfig.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render result
			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderSet(result)
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a config value",
		Long: `Remove a config value from the config file.
Removing chain_id or base_url reverts to the built-in default.

Examples:
  mevlog-viewer config remove rpc_url
  mevlog-viewer config remove chain_id`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RemoveConfigParams{
				Key: args[0],
			}

			result, err := app.RemoveConfig.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render result
			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderRemove(result)
		},
	}
}

// NewConfigPickCmd creates the config pick subcommand
func NewConfigPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick [filter]",
		Short: "Choose the default chain interactively",
		Example: `  mevlog-viewer config pick
  mevlog-viewer config pick arb`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.PickChain.Run(cmd.Context(), usecase.PickChainParams{
				Filter: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderPick(result)
		},
	}
}

// showConfig displays the current configuration
func showConfig(cmd *cobra.Command) error {
	// Get app from context
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	if app.Config.Output != config.OutputTable {
		return render.Encode(cmd.OutOrStdout(), app.Config.Output, result.Config)
	}

	// Render result
	renderer := render.NewConfigRenderer(cmd.OutOrStdout())
	return renderer.RenderConfig(result)
}
