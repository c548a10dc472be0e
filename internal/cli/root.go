package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/adapters/progress"
	"github.com/pawurb/mevlog-viewer/internal/app"
	"github.com/pawurb/mevlog-viewer/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// Command annotations read by the root command
const (
	// annotationStreaming marks commands that run until the stream ends;
	// they get no overall timeout
	annotationStreaming = "streaming"

	// annotationNoProgress disables the spinner, e.g. while the TUI owns
	// the terminal
	annotationNoProgress = "no-progress"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mevlog-viewer",
		Short: "Terminal viewer for mevlog transaction searches",
		Long: `mevlog-viewer queries a mevlog backend and renders the results in the terminal.

Searches and transaction traces are streamed over a websocket, single blocks
can be explored interactively, and every query prints the equivalent
mevlog CLI command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Set up viper
			v := config.SetupViper(cmd)

			cfg, err := config.Provider(v)
			if err != nil {
				return err
			}

			sink := progress.ForConfig(cfg)
			if cmd.Annotations[annotationNoProgress] == "true" {
				sink = progress.NewNopSink()
			}

			// Initialize app with DI
			appInstance, err := app.InitApp(cfg, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			appInstance.Logger.Debug("configuration loaded",
				"base_url", cfg.BaseURL,
				"chain_id", cfg.ChainID,
				"data_dir", cfg.DataDir,
				"output", cfg.Output,
			)

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 && cmd.Annotations[annotationStreaming] != "true" {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts and the TUI")
	flags.StringP("output", "o", "", "Output format: table, json or yaml")
	flags.Uint64("chain-id", 0, "Chain to query (defaults to 1, Ethereum Mainnet)")
	flags.String("rpc-url", "", "Custom RPC endpoint; takes precedence over --chain-id")
	flags.String("base-url", "", "mevlog backend URL (defaults to https://mevlog.rs)")
	flags.String("data-dir", "", "Directory holding config.local.json (defaults to ~/.mevlog-viewer)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("no-hyperlinks", false, "Disable terminal hyperlinks to the block explorer")
	flags.Bool("print-url", false, "Print the shareable URL of the query")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "chains",
		Title: "Chain Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, cmd := range []*cobra.Command{
		NewSearchCmd(),
		NewExploreCmd(),
		NewTraceCmd(),
		NewInspectCmd(),
		NewCommandCmd(),
		NewSamplesCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Chain commands
	for _, cmd := range []*cobra.Command{
		NewChainsCmd(),
		NewChainInfoCmd(),
	} {
		cmd.GroupID = "chains"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// printURL reports whether --print-url was given
func printURL(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("print-url")
	return v
}
